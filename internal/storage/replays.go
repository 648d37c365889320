package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/space-battle/internal/core"
)

// ErrReplayNotFound is returned when a replay ID does not exist.
var ErrReplayNotFound = errors.New("storage: replay not found")

// Replay is the header of a recorded session: everything needed to run it
// again, plus the outcome it produced.
type Replay struct {
	ID       int64
	GameID   string
	Seed     int64
	TickRate int
	ScreenW  int
	ScreenH  int

	Ticks      int
	Score      int
	Kills      int
	Breaches   int
	Hearts     int
	LivesLost  int
	FinalPhase string
	CreatedAt  time.Time

	// ConfigYAML is the game config the session was played with. Empty for
	// sessions recorded before configs were stored.
	ConfigYAML string
}

// Runtime returns the runtime configuration the session was played with.
func (r Replay) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  r.ScreenW,
		ScreenH:  r.ScreenH,
		TickRate: r.TickRate,
		Seed:     r.Seed,
	}
}

// InputRecord is the input of one tick. Ticks without input are not stored.
type InputRecord struct {
	Tick  int
	Frame core.InputFrame
}

// actionMask packs the set actions of f into a bitmask.
func actionMask(f core.InputFrame) int64 {
	var m int64
	for a, on := range f.Actions {
		if on {
			m |= 1 << uint(a)
		}
	}
	return m
}

// applyMask sets the actions of mask on f.
func applyMask(f *core.InputFrame, mask int64) {
	for a := core.ActionNone; a <= core.ActionMute; a++ {
		if mask&(1<<uint(a)) != 0 {
			f.Set(a)
		}
	}
}

// SaveReplay stores a session header and its inputs in one transaction.
// Returns the ID of the new replay.
func (s *Store) SaveReplay(r Replay, inputs []InputRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO replays
		 (game_id, seed, tick_rate, screen_w, screen_h, ticks, score, kills, breaches, hearts, lives_lost, final_phase, config_yaml)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.TickRate, r.ScreenW, r.ScreenH,
		r.Ticks, r.Score, r.Kills, r.Breaches, r.Hearts, r.LivesLost, r.FinalPhase,
		r.ConfigYAML,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	inputStmt, err := tx.Prepare(
		`INSERT INTO replay_inputs (replay_id, tick, actions, drag_x, drag_y) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer inputStmt.Close()

	tapStmt, err := tx.Prepare(
		`INSERT INTO replay_taps (replay_id, tick, seq, x, y) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare tap insert: %w", err)
	}
	defer tapStmt.Close()

	for _, in := range inputs {
		if _, err := inputStmt.Exec(id, in.Tick, actionMask(in.Frame), in.Frame.DragX, in.Frame.DragY); err != nil {
			return 0, fmt.Errorf("storage: cannot save input for tick %d: %w", in.Tick, err)
		}
		for seq, tap := range in.Frame.Taps {
			if _, err := tapStmt.Exec(id, in.Tick, seq, tap.X, tap.Y); err != nil {
				return 0, fmt.Errorf("storage: cannot save tap for tick %d: %w", in.Tick, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

const replayColumns = `id, game_id, seed, tick_rate, screen_w, screen_h,
	ticks, score, kills, breaches, hearts, lives_lost, final_phase, created_at, config_yaml`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReplay(row rowScanner) (Replay, error) {
	var r Replay
	var createdAt any
	err := row.Scan(
		&r.ID, &r.GameID, &r.Seed, &r.TickRate, &r.ScreenW, &r.ScreenH,
		&r.Ticks, &r.Score, &r.Kills, &r.Breaches, &r.Hearts, &r.LivesLost, &r.FinalPhase,
		&createdAt, &r.ConfigYAML,
	)
	r.CreatedAt = parseTime(createdAt)
	return r, err
}

// Replay retrieves a replay header by ID.
func (s *Store) Replay(id int64) (Replay, error) {
	r, err := scanReplay(s.db.QueryRow(
		`SELECT `+replayColumns+` FROM replays WHERE id = ?`, id))
	if isNoRows(err) {
		return Replay{}, fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return r, nil
}

// RecentReplays retrieves the most recent replay headers, newest first.
func (s *Store) RecentReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+replayColumns+` FROM replays ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var result []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return result, nil
}

// ReplayInputs retrieves the inputs of a replay in tick order.
func (s *Store) ReplayInputs(id int64) ([]InputRecord, error) {
	if _, err := s.Replay(id); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT tick, actions, drag_x, drag_y FROM replay_inputs WHERE replay_id = ? ORDER BY tick`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []InputRecord
	index := make(map[int]int)
	for rows.Next() {
		var rec InputRecord
		var mask int64
		if err := rows.Scan(&rec.Tick, &mask, &rec.Frame.DragX, &rec.Frame.DragY); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		rec.Frame.Actions = make(map[core.Action]bool)
		applyMask(&rec.Frame, mask)
		index[rec.Tick] = len(inputs)
		inputs = append(inputs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	taps, err := s.db.Query(
		`SELECT tick, x, y FROM replay_taps WHERE replay_id = ? ORDER BY tick, seq`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query taps: %w", err)
	}
	defer taps.Close()

	for taps.Next() {
		var tick, x, y int
		if err := taps.Scan(&tick, &x, &y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tap: %w", err)
		}
		i, ok := index[tick]
		if !ok {
			return nil, fmt.Errorf("storage: tap at tick %d has no input row", tick)
		}
		inputs[i].Frame.AddTap(x, y)
	}
	if err := taps.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return inputs, nil
}

// DeleteReplay removes a replay and its inputs.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}
	for _, table := range []string{"replay_inputs", "replay_taps"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE replay_id = ?", id); err != nil {
			return fmt.Errorf("storage: cannot delete %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// Recorder collects the non-empty input frames of one session.
type Recorder struct {
	header Replay
	inputs []InputRecord
}

// NewRecorder starts a recording for a game played with rt.
func NewRecorder(gameID string, rt core.RuntimeConfig) *Recorder {
	return &Recorder{header: Replay{
		GameID:   gameID,
		Seed:     rt.Seed,
		TickRate: rt.TickRate,
		ScreenW:  rt.ScreenW,
		ScreenH:  rt.ScreenH,
	}}
}

// Record stores a copy of the input of tick. Empty frames are skipped.
func (r *Recorder) Record(tick int, in core.InputFrame) {
	if in.Empty() {
		return
	}
	r.inputs = append(r.inputs, InputRecord{Tick: tick, Frame: in.Clone()})
}

// Header returns the replay header recorded so far.
func (r *Recorder) Header() Replay {
	return r.header
}

// Inputs returns the recorded inputs.
func (r *Recorder) Inputs() []InputRecord {
	return r.inputs
}
