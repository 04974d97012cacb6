package rankings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/mww/fantasy_analysis/model"
)

var errUnusedPosition = errors.New("unused position")

// Row is one player from a FantasyPros rankings export.
type Row struct {
	Rank     int32
	Name     string
	Team     string
	Position model.Position
}

func (r *Row) String() string {
	return fmt.Sprintf("%d - %s %s %s", r.Rank, r.Name, r.Team, r.Position)
}

type fantasyprosCSVReader struct {
	csvReader *csv.Reader
	rankIdx   int
	nameIdx   int
	teamIdx   int
	posIdx    int
}

// ParseFantasyPros reads every usable row of a FantasyPros CSV export. Rows
// for positions that never hold value (IDP) are skipped.
func ParseFantasyPros(r io.Reader) ([]Row, error) {
	reader, err := newFantasyProsCSVReader(r)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, 256)
	for {
		row, err := reader.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, errUnusedPosition) {
				continue
			}
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

func newFantasyProsCSVReader(r io.Reader) (*fantasyprosCSVReader, error) {
	fp := &fantasyprosCSVReader{
		csvReader: csv.NewReader(r),
		rankIdx:   -1,
		nameIdx:   -1,
		teamIdx:   -1,
		posIdx:    -1,
	}
	fp.csvReader.FieldsPerRecord = -1

	header, err := fp.csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading fantasypros CSV file header: %v", err)
	}

	for i, p := range header {
		switch strings.ToUpper(strings.Trim(strings.TrimSpace(p), "\ufeff\"")) {
		case "RK":
			fp.rankIdx = i
		case "PLAYER NAME":
			fp.nameIdx = i
		case "TEAM":
			fp.teamIdx = i
		case "POS":
			fp.posIdx = i
		}
	}

	if fp.rankIdx == -1 || fp.nameIdx == -1 || fp.teamIdx == -1 || fp.posIdx == -1 {
		return nil, fmt.Errorf("error finding required columns; rank: %d, name: %d, team: %d, pos: %d",
			fp.rankIdx, fp.nameIdx, fp.teamIdx, fp.posIdx)
	}

	return fp, nil
}

func (fp *fantasyprosCSVReader) readLine() (*Row, error) {
	record, err := fp.csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error reading line in rankings file (%v): %w", record, err)
	}

	maxIdx := max(fp.rankIdx, fp.nameIdx, fp.teamIdx, fp.posIdx)
	if len(record) <= maxIdx {
		return nil, fmt.Errorf("short line in rankings file (%v)", record)
	}

	row := Row{}

	rank, err := strconv.Atoi(record[fp.rankIdx])
	if err != nil {
		return nil, fmt.Errorf("error parsing ranking (%v): %w", record, err)
	}
	row.Rank = int32(rank)

	row.Name = model.TrimNameSuffix(record[fp.nameIdx])

	row.Team = strings.ToUpper(strings.TrimSpace(record[fp.teamIdx]))
	if row.Team == "FA" {
		row.Team = ""
	}

	row.Position = getPosition(record[fp.posIdx])
	if row.Position == model.POS_UNKNOWN {
		return nil, errUnusedPosition
	}

	return &row, nil
}

var fpPosRegex = regexp.MustCompile(`(?P<pos>[A-Z]+)\d+`)

// Parse out the position from FantasyPros ranking file.
// Players are listed like WR1, RB7, QB12, K20, etc.
func getPosition(q string) model.Position {
	pos := model.POS_UNKNOWN
	m := fpPosRegex.FindStringSubmatch(q)
	if m != nil {
		p := m[fpPosRegex.SubexpIndex("pos")]
		pos = model.ParsePosition(p)
	}

	return pos
}
