package protocol_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/codecollab/editor-server/internal/protocol"
)

// genLineToken generates a line token: any run of non-space characters,
// possibly empty, since the wire joins lines with single spaces.
func genLineToken() gopter.Gen {
	return gen.SliceOf(gen.RuneRange('!', '~')).Map(func(runes []rune) string {
		return string(runes)
	})
}

func genLines() gopter.Gen {
	return gen.SliceOfN(3, genLineToken())
}

// Every well-formed change frame survives decode, broadcast encode, and a
// second decode with the payload intact.
func TestFileChange_RoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("decode/encode preserves the mutation payload", prop.ForAll(
		func(fileID int64, startRow, startCol, endRow, endCol uint32, lastApplied int, lines []string) bool {
			if fileID < 0 {
				fileID = -fileID
			}

			fields := []string{
				strconv.FormatInt(fileID, 10),
				strconv.FormatUint(uint64(startRow), 10),
				strconv.FormatUint(uint64(startCol), 10),
				strconv.FormatUint(uint64(endRow), 10),
				strconv.FormatUint(uint64(endCol), 10),
				strconv.Itoa(lastApplied),
				strings.Join(lines, " "),
			}

			decoded, err := protocol.Decode("5" + strings.Join(fields, " "))
			if err != nil {
				return false
			}

			change, ok := decoded.(protocol.FileChange)
			if !ok {
				return false
			}

			if change.FileID != fileID ||
				change.Start != (protocol.Position{Row: startRow, Col: startCol}) ||
				change.End != (protocol.Position{Row: endRow, Col: endCol}) {
				return false
			}

			if change.LastAppliedChangeID == nil || *change.LastAppliedChangeID != lastApplied {
				return false
			}

			reread, err := protocol.Decode("5" + protocol.Encode(protocol.ChangeApplied{Change: change})[1:])
			if err != nil {
				return false
			}

			rereadChange, ok := reread.(protocol.FileChange)
			if !ok {
				return false
			}

			if len(rereadChange.Lines) != len(change.Lines) {
				return false
			}

			for i := range change.Lines {
				if rereadChange.Lines[i] != change.Lines[i] {
					return false
				}
			}

			return true
		},
		gen.Int64(),
		gen.UInt32(),
		gen.UInt32(),
		gen.UInt32(),
		gen.UInt32(),
		gen.Int(),
		genLines(),
	))

	properties.Property("malformed frames never decode", prop.ForAll(
		func(payload string) bool {
			// Codes above 6 are unassigned on the incoming side.
			_, err := protocol.Decode("8" + payload)

			return err != nil
		},
		gen.AnyString().SuchThat(func(s string) bool {
			return len(s) > 0
		}),
	))

	properties.TestingRun(t)
}
