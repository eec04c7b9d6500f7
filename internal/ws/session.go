package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
)

var ErrNoGame = errors.New("no game started")

// ResultRecorder stores the outcome of finished games.
type ResultRecorder interface {
	RecordResult(ctx context.Context, result models.GameResult) error
}

// SendFunc delivers one outgoing message to the client.
type SendFunc func(*Outgoing) error

// Session is a game between one client and, optionally, the CPU.
type Session struct {
	id       string
	game     *othello.Game
	tier     othello.Tier
	cpuColor othello.Color
	selector *othello.Selector
	recorder ResultRecorder

	// cpuDelay is the pause before every CPU move, so the client can show the previous move.
	cpuDelay time.Duration
}

// NewSession creates a session without a game. Recorder may be nil.
func NewSession(selector *othello.Selector, recorder ResultRecorder, cpuDelay time.Duration) *Session {
	return &Session{
		id:       uuid.New().String(),
		selector: selector,
		recorder: recorder,
		cpuDelay: cpuDelay,
	}
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// HandleMessage handles one incoming message. Client mistakes are answered with an error event;
// only failures to send are returned.
func (s *Session) HandleMessage(ctx context.Context, req *Incoming, send SendFunc) error {
	var err error

	switch req.Event {
	case EventNewGame:
		err = s.handleNewGame(ctx, req, send)
	case EventMove:
		err = s.handleMove(ctx, req, send)
	case "":
		err = errors.New("event field is either empty or missing")
	default:
		err = fmt.Errorf("unknown event: %s", req.Event)
	}

	var sendErr *sendError
	if errors.As(err, &sendErr) {
		return sendErr.err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if err != nil {
		slog.Debug("ws request rejected", "session", s.id, "event", req.Event, "error", err)
		return s.send(send, &Outgoing{ID: req.ID, Event: EventError, Data: ErrorResponse{Error: err.Error()}})
	}

	return nil
}

// sendError marks errors that come from the transport instead of the client.
type sendError struct {
	err error
}

func (e *sendError) Error() string {
	return e.err.Error()
}

func (s *Session) send(send SendFunc, outgoing *Outgoing) error {
	if err := send(outgoing); err != nil {
		return &sendError{err: err}
	}
	return nil
}

func (s *Session) handleNewGame(ctx context.Context, req *Incoming, send SendFunc) error {
	var reqData NewGameRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return fmt.Errorf("new game request unmarshal error: %w", err)
	}

	cpuColor, err := s.parseCPUColor(reqData.CPUColor)
	if err != nil {
		return err
	}

	tier := reqData.Tier
	if cpuColor == othello.EMPTY {
		tier = 0
	} else if !tier.IsValid() {
		return fmt.Errorf("%w: %d", othello.ErrUnknownTier, tier)
	}

	s.game = newGame(reqData)
	s.tier = tier
	s.cpuColor = cpuColor

	slog.Info("new game", "session", s.id, "tier", tier, "cpu_color", cpuColor)

	if err := s.sendState(req.ID, send); err != nil {
		return err
	}

	return s.playCPU(ctx, req.ID, send)
}

// newGame starts from the standard position unless the request carries a board.
func newGame(req NewGameRequest) *othello.Game {
	if req.Board == nil {
		return othello.NewGame()
	}

	mover := req.Mover
	if mover == othello.EMPTY {
		mover = othello.BLACK
	}

	return othello.NewGameWithStart(*req.Board, mover)
}

func (s *Session) parseCPUColor(value string) (othello.Color, error) {
	switch value {
	case "random":
		if s.selector.CoinFlip() {
			return othello.BLACK, nil
		}
		return othello.WHITE, nil
	case "none":
		return othello.EMPTY, nil
	default:
		color, err := othello.ParseColor(value)
		if err != nil || color == othello.EMPTY {
			return othello.EMPTY, fmt.Errorf("invalid cpu color: %q", value)
		}
		return color, nil
	}
}

func (s *Session) handleMove(ctx context.Context, req *Incoming, send SendFunc) error {
	var reqData MoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return fmt.Errorf("move request unmarshal error: %w", err)
	}

	if reqData.Move == nil {
		return models.ErrMissingMove
	}

	if s.game == nil {
		return ErrNoGame
	}

	if s.isCPUTurn() {
		return errors.New("it is not your turn")
	}

	if _, err := s.game.Play(*reqData.Move); err != nil {
		return err
	}

	if err := s.sendState(req.ID, send); err != nil {
		return err
	}

	return s.playCPU(ctx, req.ID, send)
}

func (s *Session) isCPUTurn() bool {
	turn := s.game.Turn()
	return turn.Playing && s.cpuColor != othello.EMPTY && turn.Next == s.cpuColor
}

// playCPU plays CPU moves until it is the human's turn or the game is over.
// The CPU can move several times in a row when the human has to pass.
func (s *Session) playCPU(ctx context.Context, id int, send SendFunc) error {
	for s.isCPUTurn() {
		if err := s.wait(ctx); err != nil {
			return err
		}

		move, _, err := s.game.PlayCPU(s.selector, s.tier)
		if err != nil {
			return fmt.Errorf("cpu move failed: %w", err)
		}

		slog.Debug("cpu move", "session", s.id, "move", move.String())

		if err := s.sendState(id, send); err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) wait(ctx context.Context) error {
	if s.cpuDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.cpuDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current game state. It returns ErrNoGame before the first new_game event.
func (s *Session) State() (GameState, error) {
	if s.game == nil {
		return GameState{}, ErrNoGame
	}

	current := s.game.Current()
	response := models.NewStateResponse(current.Board, current.Turn)

	return GameState{
		SessionID: s.id,
		Board:     response.Board,
		Turn:      response.Turn,
		Black:     response.Black,
		White:     response.White,
		Step:      s.game.Step(),
		LastMove:  current.Move,
		Moves:     s.game.LegalMoves().Destinations(),
		CPUColor:  s.cpuColor,
		Tier:      s.tier,
		Winner:    response.Winner,
	}, nil
}

func (s *Session) sendState(id int, send SendFunc) error {
	state, err := s.State()
	if err != nil {
		return err
	}

	if err := s.send(send, &Outgoing{ID: id, Event: EventState, Data: state}); err != nil {
		return err
	}

	if state.Winner != nil {
		s.recordResult(*state.Winner)
	}

	return nil
}

// recordResult stores a finished game. Failures are logged, the game itself is not affected.
func (s *Session) recordResult(winner othello.Color) {
	slog.Info("game over", "session", s.id, "winner", winner, "moves", s.game.String())

	if s.recorder == nil {
		return
	}

	result := models.GameResult{
		Tier:     s.tier,
		CPUColor: s.cpuColor,
		Winner:   winner,
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := s.recorder.RecordResult(ctx, result); err != nil {
		slog.Error("failed to record game result", "session", s.id, "error", err)
	}
}
