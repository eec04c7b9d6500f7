package ws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	results []models.GameResult
}

func (r *fakeRecorder) RecordResult(_ context.Context, result models.GameResult) error {
	r.results = append(r.results, result)
	return nil
}

type outbox struct {
	messages []*Outgoing
}

func (o *outbox) send(outgoing *Outgoing) error {
	o.messages = append(o.messages, outgoing)
	return nil
}

// drain returns and clears the collected messages.
func (o *outbox) drain() []*Outgoing {
	messages := o.messages
	o.messages = nil
	return messages
}

func newGameMessage(t *testing.T, id int, tier othello.Tier, cpuColor string) *Incoming {
	t.Helper()

	data, err := json.Marshal(NewGameRequest{Tier: tier, CPUColor: cpuColor})
	require.NoError(t, err)

	return &Incoming{Event: EventNewGame, ID: id, Data: data}
}

func moveMessage(id int, move string) *Incoming {
	return &Incoming{Event: EventMove, ID: id, Data: json.RawMessage(`{"move":"` + move + `"}`)}
}

func stateOf(t *testing.T, outgoing *Outgoing) GameState {
	t.Helper()

	require.Equal(t, EventState, outgoing.Event)
	state, ok := outgoing.Data.(GameState)
	require.True(t, ok)
	return state
}

func errorOf(t *testing.T, outgoing *Outgoing) string {
	t.Helper()

	require.Equal(t, EventError, outgoing.Event)
	response, ok := outgoing.Data.(ErrorResponse)
	require.True(t, ok)
	return response.Error
}

func TestSession_HotSeat(t *testing.T) {
	ctx := context.Background()
	session := NewSession(othello.NewSelector(1), nil, 0)
	out := &outbox{}

	require.NoError(t, session.HandleMessage(ctx, newGameMessage(t, 1, 0, "none"), out.send))

	messages := out.drain()
	require.Len(t, messages, 1)
	require.Equal(t, 1, messages[0].ID)

	state := stateOf(t, messages[0])
	require.Equal(t, session.ID(), state.SessionID)
	require.Equal(t, othello.NewBoardStart(), state.Board)
	require.Equal(t, othello.NewTurnStateStart(), state.Turn)
	require.Equal(t, 2, state.Black)
	require.Equal(t, 2, state.White)
	require.Len(t, state.Moves, 4)
	require.Equal(t, othello.Tier(0), state.Tier)
	require.Equal(t, othello.EMPTY, state.CPUColor)
	require.Nil(t, state.LastMove)
	require.Nil(t, state.Winner)

	require.NoError(t, session.HandleMessage(ctx, moveMessage(2, "c4"), out.send))

	messages = out.drain()
	require.Len(t, messages, 1)
	state = stateOf(t, messages[0])
	require.Equal(t, othello.WHITE, state.Turn.Next)
	require.Equal(t, othello.ParseCoordMust("c4"), *state.LastMove)
	require.Equal(t, 4, state.Black)
	require.Equal(t, 1, state.White)
	require.Equal(t, 1, state.Step)

	// illegal move is rejected without changing the game
	require.NoError(t, session.HandleMessage(ctx, moveMessage(3, "a1"), out.send))

	messages = out.drain()
	require.Len(t, messages, 1)
	require.Equal(t, 3, messages[0].ID)
	require.Contains(t, errorOf(t, messages[0]), "illegal move")

	state, err := session.State()
	require.NoError(t, err)
	require.Equal(t, 1, state.Step)
}

func TestSession_CPUPlaysWhite(t *testing.T) {
	ctx := context.Background()
	session := NewSession(othello.NewSelector(2), nil, 0)
	out := &outbox{}

	require.NoError(t, session.HandleMessage(ctx, newGameMessage(t, 1, othello.TierHeuristic, "white"), out.send))
	require.Len(t, out.drain(), 1)

	require.NoError(t, session.HandleMessage(ctx, moveMessage(2, "f5"), out.send))

	messages := out.drain()
	require.Len(t, messages, 2)

	human := stateOf(t, messages[0])
	require.Equal(t, othello.ParseCoordMust("f5"), *human.LastMove)
	require.Equal(t, othello.WHITE, human.Turn.Next)

	cpu := stateOf(t, messages[1])
	require.Equal(t, 2, cpu.Step)
	require.Equal(t, othello.BLACK, cpu.Turn.Next)
	require.Equal(t, othello.WHITE, cpu.CPUColor)
	require.Equal(t, othello.TierHeuristic, cpu.Tier)
	require.Equal(t, 6, cpu.Black+cpu.White)
}

func TestSession_CPUPlaysBlack(t *testing.T) {
	ctx := context.Background()
	session := NewSession(othello.NewSelector(3), nil, 0)
	out := &outbox{}

	require.NoError(t, session.HandleMessage(ctx, newGameMessage(t, 1, othello.TierRandom, "black"), out.send))

	messages := out.drain()
	require.Len(t, messages, 2)
	require.Equal(t, 0, stateOf(t, messages[0]).Step)
	require.Equal(t, othello.WHITE, stateOf(t, messages[1]).Turn.Next)

	// a human reply is answered by the CPU
	state := stateOf(t, messages[1])
	require.NoError(t, session.HandleMessage(ctx, moveMessage(2, state.Moves[0].String()), out.send))
	require.Len(t, out.drain(), 2)
}

func TestSession_RandomCPUColor(t *testing.T) {
	session := NewSession(othello.NewSelector(42), nil, 0)
	reference := othello.NewSelector(42)

	// the coin flip comes from the session's own selector
	for range 16 {
		want := othello.WHITE
		if reference.CoinFlip() {
			want = othello.BLACK
		}

		color, err := session.parseCPUColor("random")
		require.NoError(t, err)
		require.Equal(t, want, color)
	}

	_, err := session.parseCPUColor("empty")
	require.Error(t, err)
	_, err = session.parseCPUColor("green")
	require.Error(t, err)
}

func TestSession_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   []*Incoming
		req     *Incoming
		wantErr string
	}{
		{
			name:    "move before new game",
			req:     moveMessage(1, "c4"),
			wantErr: ErrNoGame.Error(),
		},
		{
			name:    "empty event",
			req:     &Incoming{ID: 1},
			wantErr: "event field is either empty or missing",
		},
		{
			name:    "unknown event",
			req:     &Incoming{Event: "undo", ID: 1},
			wantErr: "unknown event: undo",
		},
		{
			name:    "invalid tier",
			req:     &Incoming{Event: EventNewGame, ID: 1, Data: json.RawMessage(`{"tier":5,"cpu_color":"white"}`)},
			wantErr: othello.ErrUnknownTier.Error(),
		},
		{
			name:    "invalid cpu color",
			req:     &Incoming{Event: EventNewGame, ID: 1, Data: json.RawMessage(`{"tier":1,"cpu_color":"green"}`)},
			wantErr: "invalid cpu color",
		},
		{
			name:    "malformed move",
			setup:   []*Incoming{{Event: EventNewGame, ID: 0, Data: json.RawMessage(`{"cpu_color":"none"}`)}},
			req:     &Incoming{Event: EventMove, ID: 1, Data: json.RawMessage(`{"move":"z0"}`)},
			wantErr: "move request unmarshal error",
		},
		{
			name:    "missing move",
			setup:   []*Incoming{{Event: EventNewGame, ID: 0, Data: json.RawMessage(`{"cpu_color":"none"}`)}},
			req:     &Incoming{Event: EventMove, ID: 1, Data: json.RawMessage(`{}`)},
			wantErr: models.ErrMissingMove.Error(),
		},
		{
			name:    "null move data",
			setup:   []*Incoming{{Event: EventNewGame, ID: 0, Data: json.RawMessage(`{"cpu_color":"none"}`)}},
			req:     &Incoming{Event: EventMove, ID: 1, Data: json.RawMessage(`null`)},
			wantErr: models.ErrMissingMove.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			session := NewSession(othello.NewSelector(4), nil, 0)
			out := &outbox{}

			for _, req := range tt.setup {
				require.NoError(t, session.HandleMessage(ctx, req, out.send))
			}
			out.drain()

			require.NoError(t, session.HandleMessage(ctx, tt.req, out.send))

			messages := out.drain()
			require.Len(t, messages, 1)
			require.Contains(t, errorOf(t, messages[0]), tt.wantErr)
		})
	}
}

func TestSession_FullGameIsRecorded(t *testing.T) {
	ctx := context.Background()
	recorder := &fakeRecorder{}
	session := NewSession(othello.NewSelector(5), recorder, 0)
	out := &outbox{}

	require.NoError(t, session.HandleMessage(ctx, newGameMessage(t, 0, othello.TierRandom, "black"), out.send))

	for id := 1; ; id++ {
		messages := out.drain()
		require.NotEmpty(t, messages)

		state := stateOf(t, messages[len(messages)-1])
		if state.Winner != nil {
			require.False(t, state.Turn.Playing)
			require.Equal(t, othello.NONE, state.Turn.Next)
			require.Empty(t, state.Moves)

			require.Equal(t, []models.GameResult{{
				Tier:     othello.TierRandom,
				CPUColor: othello.BLACK,
				Winner:   *state.Winner,
			}}, recorder.results)
			break
		}

		require.Equal(t, othello.WHITE, state.Turn.Next)
		require.NoError(t, session.HandleMessage(ctx, moveMessage(id, state.Moves[0].String()), out.send))
	}

	// moves after the end are rejected and not recorded again
	require.NoError(t, session.HandleMessage(ctx, moveMessage(100, "a1"), out.send))
	require.Contains(t, errorOf(t, out.drain()[0]), othello.ErrGameOver.Error())
	require.Len(t, recorder.results, 1)
}

func TestSession_SendFailure(t *testing.T) {
	session := NewSession(othello.NewSelector(6), nil, 0)
	sendErr := errors.New("connection closed")

	err := session.HandleMessage(context.Background(), newGameMessage(t, 1, 0, "none"), func(*Outgoing) error {
		return sendErr
	})
	require.ErrorIs(t, err, sendErr)
}

func TestSession_CPUDelayCanceled(t *testing.T) {
	session := NewSession(othello.NewSelector(7), nil, time.Hour)
	out := &outbox{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := session.HandleMessage(ctx, newGameMessage(t, 1, othello.TierRandom, "black"), out.send)
	require.ErrorIs(t, err, context.Canceled)

	// the start position was sent before waiting
	require.Len(t, out.drain(), 1)
}

func TestSession_CPUDelay(t *testing.T) {
	delay := 20 * time.Millisecond
	session := NewSession(othello.NewSelector(8), nil, delay)
	out := &outbox{}

	start := time.Now()
	require.NoError(t, session.HandleMessage(context.Background(), newGameMessage(t, 1, othello.TierRandom, "black"), out.send))
	require.GreaterOrEqual(t, time.Since(start), delay)
	require.Len(t, out.drain(), 2)
}

func TestSession_MissingMoveKeepsBoard(t *testing.T) {
	ctx := context.Background()
	session := NewSession(othello.NewSelector(9), nil, 0)
	out := &outbox{}

	// a1 is legal for black on this board
	req := &Incoming{Event: EventNewGame, ID: 1, Data: json.RawMessage(
		`{"cpu_color":"none","board":"00000000000000040000000000000002","mover":"black"}`,
	)}
	require.NoError(t, session.HandleMessage(ctx, req, out.send))
	before := stateOf(t, out.drain()[0])
	require.Contains(t, before.Moves, othello.ParseCoordMust("a1"))

	require.NoError(t, session.HandleMessage(ctx, &Incoming{Event: EventMove, ID: 2, Data: json.RawMessage(`{}`)}, out.send))
	require.Contains(t, errorOf(t, out.drain()[0]), models.ErrMissingMove.Error())

	after, err := session.State()
	require.NoError(t, err)
	require.Equal(t, before.Board, after.Board)
	require.Equal(t, 0, after.Step)
}

// passBoard has black a1, a8 and white b1, b8. Black can play c1 and c8, white has no moves
// until black has played both, which ends the game.
const passBoard = "01000000000000010200000000000002"

func newPassGame(t *testing.T, session *Session, out *outbox, cpuColor string) {
	t.Helper()

	req := &Incoming{Event: EventNewGame, ID: 1, Data: json.RawMessage(
		`{"tier":1,"cpu_color":"` + cpuColor + `","board":"` + passBoard + `","mover":"black"}`,
	)}
	require.NoError(t, session.HandleMessage(context.Background(), req, out.send))
}

func TestSession_HumanPasses(t *testing.T) {
	session := NewSession(othello.NewSelector(10), nil, 0)
	out := &outbox{}

	newPassGame(t, session, out, "black")

	messages := out.drain()
	require.Len(t, messages, 3)

	start := stateOf(t, messages[0])
	require.Equal(t, passBoard, start.Board.String())
	require.Equal(t, othello.NewTurnStateStart(), start.Turn)

	// the human has no moves after the first CPU move, so the CPU moves again
	first := stateOf(t, messages[1])
	require.Equal(t, othello.TurnState{Next: othello.BLACK, Passed: othello.WHITE, Playing: true}, first.Turn)
	require.Equal(t, 1, first.Step)

	last := stateOf(t, messages[2])
	require.Equal(t, 2, last.Step)
	require.False(t, last.Turn.Playing)
	require.NotNil(t, last.Winner)
	require.Equal(t, othello.BLACK, *last.Winner)
	require.Equal(t, 6, last.Black)
	require.Equal(t, 0, last.White)
}

func TestSession_CPUPasses(t *testing.T) {
	ctx := context.Background()
	session := NewSession(othello.NewSelector(11), nil, 0)
	out := &outbox{}

	newPassGame(t, session, out, "white")
	require.Len(t, out.drain(), 1)

	// the CPU has no reply, the human keeps the turn
	require.NoError(t, session.HandleMessage(ctx, moveMessage(2, "c1"), out.send))

	messages := out.drain()
	require.Len(t, messages, 1)

	state := stateOf(t, messages[0])
	require.Equal(t, othello.TurnState{Next: othello.BLACK, Passed: othello.WHITE, Playing: true}, state.Turn)
	require.Equal(t, []othello.Coord{othello.ParseCoordMust("c8")}, state.Moves)

	require.NoError(t, session.HandleMessage(ctx, moveMessage(3, "c8"), out.send))

	messages = out.drain()
	require.Len(t, messages, 1)
	require.False(t, stateOf(t, messages[0]).Turn.Playing)
}
