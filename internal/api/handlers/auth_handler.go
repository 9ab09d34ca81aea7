package handlers

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/internal/api/presenters"
	"FoodSaver-Backend/pkg/auth"
	"FoodSaver-Backend/pkg/session"
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const sessionKeepAlive = 25 * time.Second

type (
	AuthHandler interface {
		GoogleSignIn(c *fiber.Ctx) error
		GoogleAuthURL(c *fiber.Ctx) error
		GoogleCallback(c *fiber.Ctx) error
		Session(c *fiber.Ctx) error
		SignOut(c *fiber.Ctx) error
		SessionEvents(c *fiber.Ctx) error
	}

	EventSubscriber interface {
		Subscribe(userID string) (<-chan session.Event, func())
	}

	authHandler struct {
		authService auth.AuthService
		events      EventSubscriber
		validator   *validator.Validate
		keepAlive   time.Duration
	}
)

func NewAuthHandler(authService auth.AuthService, events EventSubscriber, validator *validator.Validate) AuthHandler {
	return &authHandler{
		authService: authService,
		events:      events,
		validator:   validator,
		keepAlive:   sessionKeepAlive,
	}
}

func (h *authHandler) GoogleSignIn(c *fiber.Ctx) error {
	req := new(domain.GoogleSignInRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignIn, err)
	}

	res, err := h.authService.SignInWithIDToken(c.Context(), req.IDToken)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedSignIn, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSignIn)
}

func (h *authHandler) GoogleAuthURL(c *fiber.Ctx) error {
	res, err := h.authService.AuthURL(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetAuthURL, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAuthURL)
}

func (h *authHandler) GoogleCallback(c *fiber.Ctx) error {
	req := new(domain.GoogleCallbackRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignIn, err)
	}

	res, err := h.authService.SignInWithCode(c.Context(), req.Code, req.State)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedSignIn, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSignIn)
}

func (h *authHandler) Session(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.authService.Session(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetSession, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSession)
}

func (h *authHandler) SignOut(c *fiber.Ctx) error {
	claims, ok := c.Locals("session").(domain.SessionClaims)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedSignOut, domain.ErrTokenInvalid)
	}

	if err := h.authService.SignOut(c.Context(), claims); err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedSignOut, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSignOut)
}

// SessionEvents streams auth state changes for the caller as server-sent
// events. The stream ends after a signed_out event or when the client goes
// away.
func (h *authHandler) SessionEvents(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	events, cancel := h.events.Subscribe(userID)
	keepAlive := h.keepAlive

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := writeSessionEvent(w, event); err != nil {
					log.Debugf("session stream for %s closed: %v", userID, err)
					return
				}
				if event.Type == session.EventSignedOut {
					return
				}
			case <-ticker.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}

func writeSessionEvent(w *bufio.Writer, event session.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
	return w.Flush()
}
