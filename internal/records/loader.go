// Package records loads already-normalized per-source JSON documents
// from disk into the in-memory structures the engine consumes. It is the
// CLI-side bridge: the core itself never touches the filesystem.
//
// A game directory holds roster.json plus one file per available source
// (eventstream.json, boxscore.json, gamesummary.json, shiftchart.json).
// A season directory holds one game directory per game.
package records

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// sourceFiles maps record filenames to their source IDs.
var sourceFiles = map[string]sources.ID{
	constants.EventStreamFilename: sources.EventStreamID,
	constants.BoxscoreFilename:    sources.BoxscoreID,
	constants.GameSummaryFilename: sources.GameSummaryID,
	constants.ShiftChartFilename:  sources.ShiftChartID,
}

// LoadGame reads one game directory into a GameInput. The roster file is
// required; source files are optional, a game ships whichever sources
// the collectors managed to fetch.
func LoadGame(dir string) (reconcile.GameInput, error) {
	rosterPath := filepath.Join(dir, constants.RosterFilename)
	data, err := os.ReadFile(rosterPath)
	if err != nil {
		return reconcile.GameInput{}, errors.WrapIO("read", rosterPath, err)
	}

	var roster gamedata.RosterContext
	if err := json.Unmarshal(data, &roster); err != nil {
		return reconcile.GameInput{}, errors.WrapParse("json", rosterPath, err)
	}
	if roster.GameID == "" {
		roster.GameID = filepath.Base(dir)
	}

	input := reconcile.GameInput{
		GameID: roster.GameID,
		Roster: roster,
	}

	// Filenames sorted so record order is stable across runs.
	names := make([]string, 0, len(sourceFiles))
	for name := range sourceFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		payload, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return reconcile.GameInput{}, errors.WrapIO("read", path, err)
		}
		input.Records = append(input.Records, sources.RawRecord{
			GameID:  roster.GameID,
			Source:  sourceFiles[name],
			Payload: payload,
		})
	}

	if len(input.Records) == 0 {
		return reconcile.GameInput{}, errors.ErrNoRecords
	}
	return input, nil
}

// LoadSeason reads every game subdirectory of dir, sorted by name.
func LoadSeason(dir string) ([]reconcile.GameInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	var inputs []reconcile.GameInput
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		input, err := LoadGame(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	if len(inputs) == 0 {
		return nil, errors.ErrNoRecords
	}
	return inputs, nil
}
