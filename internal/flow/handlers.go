package flow

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tele "gopkg.in/telebot.v4"

	"payshot/core/logger"
	tg "payshot/core/telegram"
	"payshot/core/telegram/commands"
	tghelpers "payshot/core/telegram/helpers"
	"payshot/internal/payout"
	"payshot/internal/session"
)

// documentThreshold is the artifact size above which Telegram photo upload
// degrades images, so the file is sent as a document instead.
const documentThreshold = 10 << 20

// Renderer produces the screenshot artifact for a completed request.
// The caller owns the returned file and removes it after delivery.
type Renderer interface {
	Render(ctx context.Context, req payout.RenderRequest) (payout.Artifact, error)
}

// Handlers binds the conversation machine and the renderer to telebot.
type Handlers struct {
	machine  *Machine
	renderer Renderer
}

// NewHandlers wires the flow machine and renderer into a handler set.
func NewHandlers(machine *Machine, renderer Renderer) *Handlers {
	return &Handlers{machine: machine, renderer: renderer}
}

// Register attaches commands and callbacks to the registry. Callback keys
// are the raw button data strings, one per country and screenshot kind.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.handleStart,
		Description: "Generate a payout screenshot",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     h.handleCancel,
		Description: "Cancel the current flow",
	})

	for _, c := range payout.Countries() {
		code := c.Code
		_ = reg.RegisterCallback(countryCallbackPrefix+code, func(c tele.Context) error {
			return h.handleCountry(c, code)
		})
	}
	for _, kind := range []payout.Kind{payout.KindWaiting, payout.KindError} {
		key := string(kind)
		_ = reg.RegisterCallback(kindCallbackPrefix+key, func(c tele.Context) error {
			return h.handleKind(c, key)
		})
	}

	reg.SetCallbackNotFound(func(c tele.Context) error {
		_ = c.Respond(&tele.CallbackResponse{Text: textStaleButton})
		return nil
	})
	reg.SetTextFallback(func(c tele.Context) error {
		return tghelpers.SendText(c, textStartHint)
	})
}

// InProgress satisfies the text router's FSM interface.
func (h *Handlers) InProgress(userID int64) bool {
	return h.machine.InProgress(userID)
}

// ManagerHandler routes in-flow text messages to the step that expects them.
func (h *Handlers) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	step, ok := h.machine.CurrentStep(userID)
	if !ok {
		return tghelpers.SendText(c, textStartHint)
	}

	switch step {
	case session.StepAccount:
		return h.handleAccountText(c)
	case session.StepAmount:
		return h.handleAmountText(c)
	default:
		// Country and kind steps take button input only.
		return tghelpers.SendText(c, textUseButtons)
	}
}

func (h *Handlers) handleStart(c tele.Context) error {
	userID := c.Sender().ID
	h.machine.Start(userID)

	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "flow", "flow.start", slog.Int64("user_id", userID))

	return tghelpers.SendText(c, textChooseCountry, &tele.SendOptions{
		ReplyMarkup: countryKeyboard(),
	})
}

func (h *Handlers) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	if !h.machine.Cancel(userID) {
		return tghelpers.SendText(c, textNothingToDo)
	}
	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "flow", "flow.cancel", slog.Int64("user_id", userID))
	return tghelpers.SendText(c, textCancelled)
}

func (h *Handlers) handleCountry(c tele.Context, code string) error {
	userID := c.Sender().ID
	country, err := h.machine.ChooseCountry(userID, code)
	if err != nil {
		return h.rejectCallback(c, err)
	}

	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "flow", "flow.country",
		slog.Int64("user_id", userID),
		slog.String("country", country.Code),
	)

	return tghelpers.SendText(c, textChooseKind, &tele.SendOptions{
		ReplyMarkup: kindKeyboard(),
	})
}

func (h *Handlers) handleKind(c tele.Context, key string) error {
	userID := c.Sender().ID
	kind, err := h.machine.ChooseKind(userID, key)
	if err != nil {
		return h.rejectCallback(c, err)
	}

	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "flow", "flow.kind",
		slog.Int64("user_id", userID),
		slog.String("kind", string(kind)),
	)

	return tghelpers.SendText(c, textEnterAccount)
}

func (h *Handlers) handleAccountText(c tele.Context) error {
	userID := c.Sender().ID
	if _, err := h.machine.SetAccount(userID, c.Text()); err != nil {
		if errors.Is(err, ErrEmptyAccount) {
			return tghelpers.SendText(c, textEnterAccount)
		}
		return tghelpers.SendText(c, textStartHint)
	}
	return tghelpers.SendText(c, textEnterAmount)
}

func (h *Handlers) handleAmountText(c tele.Context) error {
	userID := c.Sender().ID
	if _, err := h.machine.SetAmount(userID, c.Text()); err != nil {
		if errors.Is(err, ErrBadAmount) {
			return tghelpers.SendText(c, textBadAmount)
		}
		return tghelpers.SendText(c, textStartHint)
	}

	req, err := h.machine.Request(userID)
	if err != nil {
		h.machine.Finish(userID)
		return tghelpers.SendText(c, textRenderFailed)
	}

	_ = tghelpers.SendText(c, textGenerating)
	return h.renderAndDeliver(c, userID, req)
}

// renderAndDeliver runs the screenshot pipeline and sends the result. The
// session is always deleted afterwards, success or not, so the next /start
// begins clean.
func (h *Handlers) renderAndDeliver(c tele.Context, userID int64, req payout.RenderRequest) error {
	defer h.machine.Finish(userID)

	ctx := tghelpers.BuildContext(c)
	artifact, err := h.renderer.Render(ctx, req)
	if err != nil {
		logger.Error(ctx, "flow", "flow.render_failed",
			slog.Int64("user_id", userID),
			slog.String("country", req.Country.Code),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, textRenderFailed)
	}
	defer os.Remove(artifact.Path)

	caption := req.Country.Flag + " " + req.Country.Name +
		"\nAccount: " + req.Account +
		"\nAmount: " + req.Country.CurrencySymbol + " " + payout.FormatAmount(req.Amount)

	// Large files go as documents to dodge Telegram's photo recompression.
	var sendErr error
	if artifact.Size > documentThreshold {
		sendErr = c.Send(&tele.Document{
			File:     tele.FromDisk(artifact.Path),
			FileName: "payout.png",
			Caption:  caption,
		})
	} else {
		sendErr = c.Send(&tele.Photo{
			File:    tele.FromDisk(artifact.Path),
			Caption: caption,
		})
	}
	if sendErr != nil {
		logger.Error(ctx, "flow", "flow.deliver_failed",
			slog.Int64("user_id", userID),
			slog.Int64("file_size", artifact.Size),
			slog.String("err", sendErr.Error()),
		)
		return tghelpers.SendText(c, textRenderFailed)
	}

	logger.Info(ctx, "flow", "flow.delivered",
		slog.Int64("user_id", userID),
		slog.String("country", req.Country.Code),
		slog.String("kind", string(req.Kind)),
		slog.Int64("file_size", artifact.Size),
	)
	return nil
}

// rejectCallback answers button taps that the machine refused. A missing
// session means the keyboard outlived the conversation.
func (h *Handlers) rejectCallback(c tele.Context, err error) error {
	if errors.Is(err, ErrNoSession) {
		return tghelpers.SendText(c, textStartHint)
	}
	if errors.Is(err, ErrWrongStep) || errors.Is(err, ErrUnknownCountry) || errors.Is(err, ErrUnknownKind) {
		return tghelpers.SendText(c, textUseButtons)
	}
	return tghelpers.SendText(c, textStartHint)
}
