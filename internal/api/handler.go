// Package api exposes navigation runs over a JSON HTTP API served by Hertz.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/nav"
	"github.com/vovakirdan/subnav/internal/scan"
	"github.com/vovakirdan/subnav/internal/session"
	"github.com/vovakirdan/subnav/internal/sonarmap"
	"github.com/vovakirdan/subnav/internal/storage"
)

// RunSource labels runs submitted over HTTP in the run history.
const RunSource = "api"

const defaultListLimit = 20

// MaxCommands caps the commands accepted in one run request.
const MaxCommands = 10000

// Handler serves the run endpoints. Store may be nil, in which case runs are
// computed but not kept and the history endpoints report 503.
type Handler struct {
	Source         scan.Source
	Blank          rune
	DefaultVariant nav.Variant
	EnforceModes   bool
	MaxCells       int // Largest map returned; 0 means sonarmap.DefaultMaxCells
	Store          *storage.Store
	Logger         *log.Logger
}

// RegisterRoutes mounts the API on s.
func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.GET("/healthz", h.healthz)

	api := s.Group("/api")
	api.POST("/runs", h.createRun)
	api.GET("/runs", h.listRuns)
	api.GET("/runs/:id", h.getRun)
}

// Serve runs an HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h Handler) error {
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)
	h.logger().Info("starting HTTP server", "address", addr)

	errc := make(chan error, 1)
	go func() {
		errc <- s.Run()
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	h.logger().Info("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (h Handler) logger() *log.Logger {
	if h.Logger == nil {
		return log.New(io.Discard)
	}
	return h.Logger
}

type runRequest struct {
	Variant  string   `json:"variant"`
	Commands []string `json:"commands"`
}

type positionJSON struct {
	Horizontal int `json:"horizontal"`
	Depth      int `json:"depth"`
}

type boundsJSON struct {
	MinX   int `json:"min_x"`
	MaxX   int `json:"max_x"`
	MinY   int `json:"min_y"`
	MaxY   int `json:"max_y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type runResponse struct {
	ID       string       `json:"id,omitempty"`
	Variant  string       `json:"variant"`
	Position positionJSON `json:"position"`
	Aim      int          `json:"aim"`
	Mode     string       `json:"mode"`
	Result   int          `json:"result"`
	Commands int          `json:"commands"`
	Visited  int          `json:"visited"`
	Cells    int          `json:"cells"`
	Bounds   *boundsJSON  `json:"bounds"`
	Rows     []string     `json:"rows"`
}

type storedRunResponse struct {
	Run    storage.Run `json:"run"`
	Bounds *boundsJSON `json:"bounds"`
	Rows   []string    `json:"rows"`
}

func (h Handler) healthz(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) createRun(c context.Context, ctx *app.RequestContext) {
	var body runRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	variant := h.DefaultVariant
	if body.Variant != "" {
		v, err := nav.ParseVariant(body.Variant)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_variant", err.Error())
			return
		}
		variant = v
	}
	if len(body.Commands) > MaxCommands {
		writeErrorBody(ctx, consts.StatusRequestEntityTooLarge, "too_many_commands",
			fmt.Sprintf("at most %d commands per run, got %d", MaxCommands, len(body.Commands)))
		return
	}

	sess := session.New(session.Options{
		Variant:      variant,
		Source:       h.Source,
		Blank:        h.Blank,
		EnforceModes: h.EnforceModes,
		MaxCells:     h.MaxCells,
		Logger:       h.Logger,
	})
	for i, text := range body.Commands {
		if _, err := sess.Execute(text); err != nil {
			writeCommandError(ctx, i+1, err)
			return
		}
	}

	if box := sess.Map().BoundingBox(); !sess.Map().Fits(box) {
		writeMapTooLarge(ctx, box)
		return
	}

	resp := runResponse{
		Variant:  variant.String(),
		Position: positionJSON{Horizontal: sess.Position().Horizontal, Depth: sess.Position().Depth},
		Aim:      sess.State().Aim,
		Mode:     sess.Mode().String(),
		Result:   sess.Result(),
		Commands: sess.Commands(),
		Visited:  len(sess.Visited()),
		Cells:    sess.Map().Len(),
	}
	var err error
	resp.Bounds, resp.Rows, err = frame(sess.Map())
	if err != nil {
		writeMapTooLarge(ctx, sess.Map().BoundingBox())
		return
	}

	if h.Store != nil {
		run, err := h.Store.SaveSession(sess, RunSource)
		if err != nil {
			h.logger().Error("could not save run", "error", err)
			writeErrorBody(ctx, consts.StatusInternalServerError, "storage_error", "could not save run")
			return
		}
		resp.ID = run.ID
	}

	h.logger().Debug("run computed", "variant", resp.Variant, "commands", resp.Commands, "result", resp.Result)
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listRuns(c context.Context, ctx *app.RequestContext) {
	if h.Store == nil {
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "storage_unavailable", "run history is disabled")
		return
	}

	limit := defaultListLimit
	if raw := string(ctx.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := h.Store.RecentRuns(limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	ctx.JSON(consts.StatusOK, map[string]any{"runs": runs})
}

func (h Handler) getRun(c context.Context, ctx *app.RequestContext) {
	if h.Store == nil {
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "storage_unavailable", "run history is disabled")
		return
	}

	id := ctx.Param("id")
	run, err := h.Store.RunByID(id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var opts []sonarmap.Option
	if h.Blank != 0 {
		opts = append(opts, sonarmap.WithBlank(h.Blank))
	}
	if h.MaxCells > 0 {
		opts = append(opts, sonarmap.WithMaxCells(h.MaxCells))
	}
	m, err := h.Store.RunCells(id, opts...)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp := storedRunResponse{Run: run}
	resp.Bounds, resp.Rows, err = frame(m)
	if err != nil {
		writeMapTooLarge(ctx, m.BoundingBox())
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

// frame converts the rendered map into response fields. An empty map has no
// bounds and no rows; a map over the cell limit is sonarmap.ErrTooLarge.
func frame(m *sonarmap.Map) (*boundsJSON, []string, error) {
	box, grid, err := m.Frame()
	if err != nil {
		return nil, nil, err
	}
	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = string(row)
	}
	if box.Empty() {
		return nil, rows, nil
	}
	return toBoundsJSON(box), rows, nil
}

func toBoundsJSON(b core.Bounds) *boundsJSON {
	return &boundsJSON{
		MinX:   b.MinX,
		MaxX:   b.MaxX,
		MinY:   b.MinY,
		MaxY:   b.MaxY,
		Width:  b.Width,
		Height: b.Height,
	}
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeCommandError(ctx *app.RequestContext, index int, err error) {
	message := fmt.Sprintf("command %d: %v", index, err)
	switch {
	case errors.Is(err, nav.ErrParse):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_command", message)
	case errors.Is(err, nav.ErrIllegalTransition):
		writeErrorBody(ctx, consts.StatusConflict, "illegal_transition", message)
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", message)
	}
}

func writeMapTooLarge(ctx *app.RequestContext, box core.Bounds) {
	writeErrorBody(ctx, consts.StatusUnprocessableEntity, "map_too_large", sonarmap.TooLargeMessage(box))
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, storage.ErrRunNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "run_not_found", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
