package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show")
	moverString := flag.String("mover", "", "mark the legal moves of this color (black or white)")
	transcript := flag.String("moves", "", "show the position after these moves from the start, e.g. \"f5 d6 c3\"")
	flag.Parse()

	board, mover, err := loadBoard(*boardString, *moverString, *transcript)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if !mover.IsPlayer() {
		board.Print()
		fmt.Printf("discs: %d\n", board.CountDiscs())
		return
	}

	moves := othello.LegalMoves(board, mover)
	for _, line := range board.ASCIIArtLines(moves) {
		fmt.Println(line)
	}

	black, white := board.StoneCounts()
	fmt.Printf("black: %d white: %d\n", black, white)

	for _, candidate := range moves.Candidates() {
		fmt.Printf("%s flips %d\n", candidate.Dest, len(candidate.Flips))
	}
}

func loadBoard(boardString, moverString, transcript string) (othello.Board, othello.Color, error) {
	mover, err := othello.ParseColor(moverString)
	if err != nil {
		return othello.Board{}, othello.EMPTY, err
	}

	if transcript == "" {
		board, err := othello.NewBoardFromString(boardString)
		return board, mover, err
	}

	moves, err := othello.ParseMoves(transcript)
	if err != nil {
		return othello.Board{}, othello.EMPTY, err
	}

	game, err := othello.NewGameFromMoves(moves)
	if err != nil {
		return othello.Board{}, othello.EMPTY, err
	}

	// without -mover, show the moves of whoever is next
	if moverString == "" {
		mover = game.Turn().Next
	}

	return game.Board(), mover, nil
}
