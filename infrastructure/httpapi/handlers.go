package httpapi

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"zenlarn/domain"
	"zenlarn/domain/search"
	"zenlarn/errors"
)

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) register(c echo.Context) error {
	var body credentialsBody
	if err := c.Bind(&body); err != nil {
		return toHTTPError(errors.ErrInvalidPayload)
	}

	token, err := s.auth.Register(body.Email, body.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, tokenResponse{Token: string(token)})
}

func (s *Server) login(c echo.Context) error {
	var body credentialsBody
	if err := c.Bind(&body); err != nil {
		return toHTTPError(errors.ErrInvalidPayload)
	}

	token, err := s.auth.Login(body.Email, body.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: string(token)})
}

type channelBody struct {
	Name string `json:"name"`
}

type channelResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Owner        string    `json:"owner"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toChannelResponse(channel domain.Channel) channelResponse {
	return channelResponse{
		ID:           string(channel.ID),
		Name:         channel.Name,
		Owner:        channel.Owner,
		Participants: channel.Participants,
		CreatedAt:    channel.CreatedAt,
	}
}

func (s *Server) createChannel(c echo.Context) error {
	var body channelBody
	if err := c.Bind(&body); err != nil || body.Name == "" {
		return toHTTPError(errors.ErrInvalidPayload)
	}

	channel, err := s.channels.Create(body.Name, identity(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toChannelResponse(channel))
}

func (s *Server) getChannel(c echo.Context) error {
	channel, err := s.channels.Get(domain.ChannelID(c.Param("id")), identity(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toChannelResponse(channel))
}

func (s *Server) listChannels(c echo.Context) error {
	channels, err := s.channels.ChannelsFor(identity(c))
	if err != nil {
		return toHTTPError(err)
	}

	response := make([]channelResponse, 0, len(channels))
	for _, channel := range channels {
		response = append(response, toChannelResponse(channel))
	}
	return c.JSON(http.StatusOK, response)
}

type messageResponse struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channelId"`
	SenderEmail string    `json:"senderEmail"`
	Text        string    `json:"text"`
	Lang        string    `json:"lang,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type messagePage struct {
	Messages   []messageResponse `json:"messages"`
	NextCursor *string           `json:"nextCursor,omitempty"`
}

func (s *Server) listMessages(c echo.Context) error {
	var cursor *string
	if raw := c.QueryParam("cursor"); raw != "" {
		cursor = &raw
	}

	messages, next, err := s.chat.GetMessages(identity(c), domain.GetMessagesCommand{
		ChannelID: domain.ChannelID(c.Param("id")),
		Cursor:    cursor,
	})
	if err != nil {
		return toHTTPError(err)
	}

	page := messagePage{Messages: make([]messageResponse, 0, len(messages)), NextCursor: next}
	for _, m := range messages {
		page.Messages = append(page.Messages, messageResponse{
			ID:          m.ID.String(),
			ChannelID:   string(m.ChannelID),
			SenderEmail: m.Sender,
			Text:        m.Text,
			Lang:        m.Lang,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, page)
}

type searchHit struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Lang      string    `json:"lang,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) searchMessages(c echo.Context) error {
	query := search.NewQuery(c.QueryParam("q"))
	if query.Terms == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	hits, err := s.chat.Search(c.Request().Context(),
		domain.ChannelID(c.Param("id")), identity(c), query.Terms, query.Limit)
	if err != nil {
		return toHTTPError(err)
	}

	response := make([]searchHit, 0, len(hits))
	for _, hit := range hits {
		response = append(response, searchHit{
			ID:        hit.ID,
			Sender:    hit.Sender,
			Text:      hit.Text,
			Lang:      hit.Lang,
			CreatedAt: hit.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, response)
}

type requestBody struct {
	ChannelID string `json:"channelId"`
	Target    string `json:"target"`
}

type requestResponse struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channelId"`
	Sender    string    `json:"sender"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toRequestResponse(request domain.ChannelRequest) requestResponse {
	return requestResponse{
		ID:        request.ID.String(),
		ChannelID: string(request.ChannelID),
		Sender:    request.Sender,
		Target:    request.Target,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
	}
}

func (s *Server) sendRequest(c echo.Context) error {
	var body requestBody
	if err := c.Bind(&body); err != nil || body.ChannelID == "" || body.Target == "" {
		return toHTTPError(errors.ErrInvalidPayload)
	}

	request, err := s.requests.Send(domain.ChannelID(body.ChannelID), identity(c), body.Target)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toRequestResponse(request))
}

func (s *Server) listRequests(c echo.Context) error {
	pending, err := s.requests.Pending(identity(c))
	if err != nil {
		return toHTTPError(err)
	}

	response := make([]requestResponse, 0, len(pending))
	for _, request := range pending {
		response = append(response, toRequestResponse(request))
	}
	return c.JSON(http.StatusOK, response)
}

type settleBody struct {
	Action string `json:"action"`
}

func (s *Server) settleRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	var body settleBody
	if err := c.Bind(&body); err != nil {
		return toHTTPError(errors.ErrInvalidPayload)
	}

	switch body.Action {
	case "accept":
		err = s.requests.Accept(id, identity(c))
	case "reject":
		err = s.requests.Reject(id, identity(c))
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "action must be accept or reject")
	}
	if err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, s.health.Latest())
}

// toHTTPError maps domain sentinels to transport status codes.
func toHTTPError(err error) error {
	switch {
	case stderrors.Is(err, errors.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case stderrors.Is(err, errors.ErrChannelNotFound),
		stderrors.Is(err, errors.ErrRequestNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case stderrors.Is(err, errors.ErrUserAlreadyExists),
		stderrors.Is(err, errors.ErrRequestAlreadySent):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case stderrors.Is(err, errors.ErrInvalidPassword),
		stderrors.Is(err, errors.ErrEmptyMessage),
		stderrors.Is(err, errors.ErrInvalidPayload):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case stderrors.Is(err, errors.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
