package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lk16/reversi/internal/client"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
)

// cpuPlayer picks the CPU move in the current position of a game.
type cpuPlayer interface {
	Move(ctx context.Context, game *othello.Game) (othello.Coord, error)
}

type localCPU struct {
	selector *othello.Selector
	tier     othello.Tier
}

func (c *localCPU) Move(_ context.Context, game *othello.Game) (othello.Coord, error) {
	candidate, err := c.selector.Select(game.LegalMoves(), c.tier)
	if err != nil {
		return othello.Coord{}, err
	}
	return candidate.Dest, nil
}

// remoteCPU asks a running server for moves.
type remoteCPU struct {
	client *client.Client
	tier   othello.Tier
}

func (c *remoteCPU) Move(ctx context.Context, game *othello.Game) (othello.Coord, error) {
	candidate, err := c.client.CPUMove(ctx, game.Board(), game.Turn().Next, c.tier)
	if err != nil {
		return othello.Coord{}, err
	}
	return candidate.Dest, nil
}

// session runs one terminal game. A nil cpu means two humans share the terminal.
type session struct {
	game     *othello.Game
	cpu      cpuPlayer
	cpuColor othello.Color
	in       *bufio.Scanner
	out      io.Writer
}

var errQuit = errors.New("quit")

func (s *session) isCPUTurn() bool {
	turn := s.game.Turn()
	return s.cpu != nil && turn.Playing && turn.Next == s.cpuColor
}

func (s *session) printBoard() {
	for _, line := range s.game.Board().ASCIIArtLines(s.game.LegalMoves()) {
		fmt.Fprintln(s.out, line)
	}

	black, white := s.game.Board().StoneCounts()
	fmt.Fprintf(s.out, "black: %d white: %d\n", black, white)

	if turn := s.game.Turn(); turn.HasPass() {
		fmt.Fprintf(s.out, "%s has no moves and passes\n", turn.Passed)
	}
}

// undo steps back to the previous position where a human is to move.
func (s *session) undo() error {
	for step := s.game.Step() - 1; step >= 0; step-- {
		if err := s.game.JumpTo(step); err != nil {
			return err
		}
		if !s.isCPUTurn() {
			return nil
		}
	}

	return errors.New("nothing to undo")
}

func (s *session) printHistory() {
	for i, snapshot := range s.game.History() {
		marker := " "
		if i == s.game.Step() {
			marker = "*"
		}

		move := "start"
		if snapshot.Move != nil {
			move = snapshot.Move.String()
		}

		fmt.Fprintf(s.out, "%s %2d %-5s discs: %d\n", marker, i, move, snapshot.Board.CountDiscs())
	}

	fmt.Fprintf(s.out, "%d positions\n", s.game.Len())
}

// humanTurn reads commands until a move is played.
func (s *session) humanTurn() error {
	for {
		fmt.Fprintf(s.out, "%s to move (e.g. c4, undo, history, quit): ", s.game.Turn().Next)

		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return err
			}
			return errQuit
		}

		command := strings.ToLower(strings.TrimSpace(s.in.Text()))

		switch command {
		case "":
			continue
		case "quit", "q":
			return errQuit
		case "history", "h":
			s.printHistory()
			continue
		case "undo", "u":
			if err := s.undo(); err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			return nil
		}

		move, err := othello.ParseCoord(command)
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}

		if _, err = s.game.Play(move); err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}

		return nil
	}
}

func (s *session) cpuTurn(ctx context.Context) error {
	move, err := s.cpu.Move(ctx, s.game)
	if err != nil {
		return fmt.Errorf("cpu move failed: %w", err)
	}

	if _, err = s.game.Play(move); err != nil {
		return fmt.Errorf("cpu played %s: %w", move, err)
	}

	fmt.Fprintf(s.out, "cpu plays %s\n", move)
	return nil
}

func (s *session) run(ctx context.Context) error {
	for !s.game.IsOver() {
		s.printBoard()

		var err error
		if s.isCPUTurn() {
			err = s.cpuTurn(ctx)
		} else {
			err = s.humanTurn()
		}

		if err != nil {
			return err
		}
	}

	s.printBoard()

	board := s.game.Board()
	switch winner := othello.Winner(board); winner {
	case othello.EMPTY:
		fmt.Fprintln(s.out, "draw")
	default:
		fmt.Fprintf(s.out, "%s wins by %d\n", winner, abs(othello.FinalScore(board)))
	}

	fmt.Fprintf(s.out, "moves: %s\n", s.game)
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func newCPU(tier othello.Tier, seed uint64, serverURL string) cpuPlayer {
	if serverURL != "" {
		return &remoteCPU{
			client: client.NewClient(&config.ClientConfig{
				ServerURL: serverURL,
				Token:     os.Getenv("REVERSI_TOKEN"),
			}),
			tier: tier,
		}
	}

	selector := othello.NewSelectorRandom()
	if seed != 0 {
		selector = othello.NewSelector(seed)
	}

	return &localCPU{selector: selector, tier: tier}
}

func main() {
	tierString := flag.String("tier", "2", "cpu tier: 1 (random) or 2 (heuristic)")
	colorString := flag.String("color", "black", "your color: black, white or none for two players")
	seed := flag.Uint64("seed", 0, "seed for the cpu, 0 picks one from the clock")
	serverURL := flag.String("server", "", "ask the server at this URL for cpu moves, e.g. http://localhost:4444")
	flag.Parse()

	config.SetLogLevel()

	human, err := othello.ParseColor(*colorString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	s := &session{
		game: othello.NewGame(),
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
	}

	if human.IsPlayer() {
		tier, err := othello.ParseTier(*tierString)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		s.cpu = newCPU(tier, *seed, *serverURL)
		s.cpuColor = human.Opponent()
	}

	err = s.run(context.Background())
	if errors.Is(err, errQuit) {
		return
	}
	if err != nil {
		slog.Error("game failed", "error", err)
		os.Exit(1)
	}
}
