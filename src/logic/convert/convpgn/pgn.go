package convpgn

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/corentings/chess/v2"
)

// Portable Game Notation record of a finished or running game

type PGNHeader int

const (
	PGNHeaderEvent      PGNHeader = iota // <Seven Tag Roster>
	PGNHeaderSite                        // <Seven Tag Roster>
	PGNHeaderDate                        // <Seven Tag Roster>
	PGNHeaderRound                       // <Seven Tag Roster>
	PGNHeaderWhite                       // <Seven Tag Roster>
	PGNHeaderBlack                       // <Seven Tag Roster>
	PGNHeaderGameID                      // uuid of the session
	PGNHeaderUnreplayed                  // moves the replay could not apply
	PGNHeaderUndefined
)

var headerOrder = []PGNHeader{
	PGNHeaderEvent,
	PGNHeaderSite,
	PGNHeaderDate,
	PGNHeaderRound,
	PGNHeaderWhite,
	PGNHeaderBlack,
	PGNHeaderGameID,
}

func ConvPGNHeaderToString(header PGNHeader) string {
	switch header {
	case PGNHeaderEvent:
		return "Event"
	case PGNHeaderSite:
		return "Site"
	case PGNHeaderDate:
		return "Date"
	case PGNHeaderRound:
		return "Round"
	case PGNHeaderWhite:
		return "White"
	case PGNHeaderBlack:
		return "Black"
	case PGNHeaderGameID:
		return "GameId"
	case PGNHeaderUnreplayed:
		return "Unreplayed"
	default:
		return "???"
	}
}

// Replay applies long algebraic moves from the start position. The board
// moves pieces without checking the rules, so the first move the library
// rejects ends the replay and it and the rest are returned.
func Replay(moves []string) (*chess.Game, []string) {
	game := chess.NewGame()
	notation := chess.UCINotation{}
	for i, raw := range moves {
		mv, err := notation.Decode(game.Position(), raw)
		if err != nil {
			return game, moves[i:]
		}
		if err := game.Move(mv, nil); err != nil {
			return game, moves[i:]
		}
	}
	return game, nil
}

// WritePGN writes the history ("e2e4 e7e5 ...") as PGN
func WritePGN(w io.Writer, history string, headers map[PGNHeader]string) error {
	if w == nil {
		return fmt.Errorf("nil writer")
	}

	game, rest := Replay(strings.Fields(history))
	for _, hh := range headerOrder {
		if v := strings.TrimSpace(headers[hh]); v != "" {
			game.AddTagPair(ConvPGNHeaderToString(hh), v)
		}
	}
	if len(rest) > 0 {
		game.AddTagPair(ConvPGNHeaderToString(PGNHeaderUnreplayed), strings.Join(rest, " "))
	}

	bw := bufio.NewWriter(w)
	body := strings.TrimRight(game.String(), "\n")
	if _, err := fmt.Fprintln(bw, body); err != nil {
		return err
	}
	return bw.Flush()
}
