package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/vmihailenco/msgpack/v5"

	"zenlarn/repositories"
)

// Scans the badger store and prints one table row per document.
// Supports every key family: msg:, channel:, request:, request_id:, user:.
func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).WithReadOnly(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Owner", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				row, err := toRow(key, v)
				if err != nil {
					// Log and keep scanning instead of stopping the whole dump
					fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
					return nil
				}
				table.Append(row)
				count++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	color.Green.Printf("\n%d documents under prefix %q\n", count, *prefix)
}

func toRow(key string, value []byte) ([]string, error) {
	switch {
	case strings.HasPrefix(key, "msg:"):
		var m repositories.DiskMessage
		if err := msgpack.Unmarshal(value, &m); err != nil {
			return nil, err
		}
		return []string{key, "MESSAGE", m.CreatedAt.Format("15:04:05"), m.Sender, truncate(m.Text)}, nil

	case strings.HasPrefix(key, "channel:"):
		var c repositories.DiskChannel
		if err := msgpack.Unmarshal(value, &c); err != nil {
			return nil, err
		}
		detail := fmt.Sprintf("%s (%d participants)", c.Name, len(c.Participants))
		return []string{key, "CHANNEL", c.CreatedAt.Format("15:04:05"), c.Owner, detail}, nil

	case strings.HasPrefix(key, "request:"), strings.HasPrefix(key, "request_id:"):
		var r repositories.DiskRequest
		if err := msgpack.Unmarshal(value, &r); err != nil {
			return nil, err
		}
		detail := fmt.Sprintf("%s -> %s [%s]", r.Sender, r.Target, r.Status)
		return []string{key, "REQUEST", r.CreatedAt.Format("15:04:05"), r.Sender, detail}, nil

	case strings.HasPrefix(key, "user:"):
		var u repositories.User
		if err := msgpack.Unmarshal(value, &u); err != nil {
			return nil, err
		}
		return []string{key, "USER", u.CreatedAt.Format("15:04:05"), u.Email, strings.Join(u.Roles, ",")}, nil

	default:
		return []string{key, "RAW", "--:--:--", "-", fmt.Sprintf("Size: %d bytes", len(value))}, nil
	}
}

func truncate(s string) string {
	if len(s) > 48 {
		return s[:48] + "..."
	}
	return s
}
