// Package persistence provides SQLite-based snapshot storage for the
// social engine. The engine owns its state; this store serializes full
// snapshots for restart continuity.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/social-fabric/internal/diffusion"
	"github.com/talgya/social-fabric/internal/engine"
	"github.com/talgya/social-fabric/internal/reputation"
	"github.com/talgya/social-fabric/internal/social"
)

// DB wraps a SQLite connection for snapshot persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entities (
		id TEXT PRIMARY KEY,
		kind INTEGER NOT NULL,
		pos_x REAL NOT NULL,
		pos_y REAL NOT NULL,
		influence REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS relationships (
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		type TEXT NOT NULL,
		strength REAL NOT NULL,
		trust REAL NOT NULL,
		familiarity REAL NOT NULL,
		created_tick INTEGER NOT NULL,
		history_json TEXT NOT NULL,
		PRIMARY KEY (source, target)
	);

	CREATE TABLE IF NOT EXISTS social_groups (
		id TEXT PRIMARY KEY,
		purpose TEXT NOT NULL,
		cohesion REAL NOT NULL,
		low_cohesion INTEGER NOT NULL,
		members_json TEXT NOT NULL,
		leadership_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reputations (
		entity_id TEXT PRIMARY KEY,
		global REAL NOT NULL,
		traits_json TEXT NOT NULL,
		groups_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rumors (
		id TEXT PRIMARY KEY,
		subject TEXT NOT NULL,
		content TEXT NOT NULL,
		truth REAL NOT NULL,
		relevance REAL NOT NULL,
		known_by_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS info_units (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		content TEXT NOT NULL,
		sensitivity REAL NOT NULL,
		originator TEXT NOT NULL,
		knowledge_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS channels (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		bandwidth REAL NOT NULL,
		noise REAL NOT NULL,
		participants_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sim_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rumors_subject ON rumors(subject);
	CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(target);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasState reports whether a prior snapshot exists.
func (db *DB) HasState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM entities"); err != nil {
		return false
	}
	return count > 0
}

// SaveSnapshot writes a full snapshot (full replace per table).
func (db *DB) SaveSnapshot(snap *engine.Snapshot) error {
	slog.Info("saving snapshot",
		"tick", snap.Tick,
		"entities", len(snap.Entities),
		"relationships", len(snap.Relationships),
		"rumors", len(snap.Rumors),
	)

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tables := []string{"entities", "relationships", "social_groups", "reputations", "rumors", "info_units", "channels"}
	for _, t := range tables {
		if _, err := tx.Exec("DELETE FROM " + t); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}

	for _, ent := range snap.Entities {
		_, err := tx.Exec(
			"INSERT INTO entities (id, kind, pos_x, pos_y, influence) VALUES (?, ?, ?, ?, ?)",
			ent.ID, ent.Kind, ent.Position.X, ent.Position.Y, ent.Influence,
		)
		if err != nil {
			return fmt.Errorf("insert entity %s: %w", ent.ID, err)
		}
	}

	for _, rel := range snap.Relationships {
		historyJSON, _ := json.Marshal(rel.History)
		_, err := tx.Exec(`INSERT INTO relationships
			(source, target, type, strength, trust, familiarity, created_tick, history_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rel.Source, rel.Target, rel.Type, rel.Strength, rel.Trust,
			rel.Familiarity, rel.CreatedTick, string(historyJSON),
		)
		if err != nil {
			return fmt.Errorf("insert relationship %s-%s: %w", rel.Source, rel.Target, err)
		}
	}

	for _, g := range snap.Groups {
		membersJSON, _ := json.Marshal(g.Members)
		leadershipJSON, _ := json.Marshal(g.Hierarchy.Leadership)
		low := 0
		if g.LowCohesion {
			low = 1
		}
		_, err := tx.Exec(`INSERT INTO social_groups
			(id, purpose, cohesion, low_cohesion, members_json, leadership_json)
			VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, g.Purpose, g.Cohesion, low, string(membersJSON), string(leadershipJSON),
		)
		if err != nil {
			return fmt.Errorf("insert group %s: %w", g.ID, err)
		}
	}

	for _, rec := range snap.Reputations {
		traitsJSON, _ := json.Marshal(rec.Traits)
		groupsJSON, _ := json.Marshal(rec.Groups)
		_, err := tx.Exec(
			"INSERT INTO reputations (entity_id, global, traits_json, groups_json) VALUES (?, ?, ?, ?)",
			rec.EntityID, rec.Global, string(traitsJSON), string(groupsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert reputation %s: %w", rec.EntityID, err)
		}
	}

	for _, r := range snap.Rumors {
		knownJSON, _ := json.Marshal(r.KnownBy)
		_, err := tx.Exec(
			"INSERT INTO rumors (id, subject, content, truth, relevance, known_by_json) VALUES (?, ?, ?, ?, ?, ?)",
			r.ID, r.Subject, r.Content, r.Truth, r.Relevance, string(knownJSON),
		)
		if err != nil {
			return fmt.Errorf("insert rumor %s: %w", r.ID, err)
		}
	}

	for _, u := range snap.Units {
		knowledgeJSON, _ := json.Marshal(u.Knowledge)
		_, err := tx.Exec(
			"INSERT INTO info_units (id, type, content, sensitivity, originator, knowledge_json) VALUES (?, ?, ?, ?, ?, ?)",
			u.ID, u.Type, u.Content, u.Sensitivity, u.Originator, string(knowledgeJSON),
		)
		if err != nil {
			return fmt.Errorf("insert info unit %s: %w", u.ID, err)
		}
	}

	for _, c := range snap.Channels {
		participantsJSON, _ := json.Marshal(c.Participants)
		_, err := tx.Exec(
			"INSERT INTO channels (id, type, bandwidth, noise, participants_json) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Type, c.Bandwidth, c.Noise, string(participantsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert channel %s: %w", c.ID, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO sim_meta (key, value) VALUES ('last_tick', ?)",
		strconv.FormatUint(snap.Tick, 10),
	); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("snapshot saved")
	return nil
}

// LoadSnapshot reads the stored snapshot back.
func (db *DB) LoadSnapshot() (*engine.Snapshot, error) {
	snap := &engine.Snapshot{}

	var tickStr string
	if err := db.conn.Get(&tickStr, "SELECT value FROM sim_meta WHERE key = 'last_tick'"); err == nil {
		if t, err := strconv.ParseUint(tickStr, 10, 64); err == nil {
			snap.Tick = t
		}
	}

	type entityRow struct {
		ID        string  `db:"id"`
		Kind      uint8   `db:"kind"`
		PosX      float64 `db:"pos_x"`
		PosY      float64 `db:"pos_y"`
		Influence float64 `db:"influence"`
	}
	var entities []entityRow
	if err := db.conn.Select(&entities, "SELECT id, kind, pos_x, pos_y, influence FROM entities ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load entities: %w", err)
	}
	for _, row := range entities {
		snap.Entities = append(snap.Entities, social.Entity{
			ID:        social.EntityID(row.ID),
			Kind:      social.EntityKind(row.Kind),
			Position:  social.Position{X: row.PosX, Y: row.PosY},
			Influence: row.Influence,
		})
	}

	type relRow struct {
		Source      string  `db:"source"`
		Target      string  `db:"target"`
		Type        string  `db:"type"`
		Strength    float64 `db:"strength"`
		Trust       float64 `db:"trust"`
		Familiarity float64 `db:"familiarity"`
		CreatedTick uint64  `db:"created_tick"`
		HistoryJSON string  `db:"history_json"`
	}
	var rels []relRow
	if err := db.conn.Select(&rels, "SELECT source, target, type, strength, trust, familiarity, created_tick, history_json FROM relationships ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load relationships: %w", err)
	}
	for _, row := range rels {
		rel := social.Relationship{
			Source:      social.EntityID(row.Source),
			Target:      social.EntityID(row.Target),
			Type:        row.Type,
			Strength:    row.Strength,
			Trust:       row.Trust,
			Familiarity: row.Familiarity,
			CreatedTick: row.CreatedTick,
		}
		if err := json.Unmarshal([]byte(row.HistoryJSON), &rel.History); err != nil {
			return nil, fmt.Errorf("decode history %s-%s: %w", row.Source, row.Target, err)
		}
		snap.Relationships = append(snap.Relationships, rel)
	}

	type groupRow struct {
		ID             string  `db:"id"`
		Purpose        string  `db:"purpose"`
		Cohesion       float64 `db:"cohesion"`
		LowCohesion    int     `db:"low_cohesion"`
		MembersJSON    string  `db:"members_json"`
		LeadershipJSON string  `db:"leadership_json"`
	}
	var groups []groupRow
	if err := db.conn.Select(&groups, "SELECT id, purpose, cohesion, low_cohesion, members_json, leadership_json FROM social_groups ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	for _, row := range groups {
		g := social.Group{
			ID:          social.GroupID(row.ID),
			Purpose:     row.Purpose,
			Cohesion:    row.Cohesion,
			LowCohesion: row.LowCohesion != 0,
		}
		if err := json.Unmarshal([]byte(row.MembersJSON), &g.Members); err != nil {
			return nil, fmt.Errorf("decode members %s: %w", row.ID, err)
		}
		if err := json.Unmarshal([]byte(row.LeadershipJSON), &g.Hierarchy.Leadership); err != nil {
			return nil, fmt.Errorf("decode leadership %s: %w", row.ID, err)
		}
		snap.Groups = append(snap.Groups, g)
	}

	type repRow struct {
		EntityID   string  `db:"entity_id"`
		Global     float64 `db:"global"`
		TraitsJSON string  `db:"traits_json"`
		GroupsJSON string  `db:"groups_json"`
	}
	var reps []repRow
	if err := db.conn.Select(&reps, "SELECT entity_id, global, traits_json, groups_json FROM reputations ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load reputations: %w", err)
	}
	for _, row := range reps {
		rec := reputation.Record{
			EntityID: social.EntityID(row.EntityID),
			Global:   row.Global,
		}
		if err := json.Unmarshal([]byte(row.TraitsJSON), &rec.Traits); err != nil {
			return nil, fmt.Errorf("decode traits %s: %w", row.EntityID, err)
		}
		if err := json.Unmarshal([]byte(row.GroupsJSON), &rec.Groups); err != nil {
			return nil, fmt.Errorf("decode group scores %s: %w", row.EntityID, err)
		}
		snap.Reputations = append(snap.Reputations, rec)
	}

	type rumorRow struct {
		ID          string  `db:"id"`
		Subject     string  `db:"subject"`
		Content     string  `db:"content"`
		Truth       float64 `db:"truth"`
		Relevance   float64 `db:"relevance"`
		KnownByJSON string  `db:"known_by_json"`
	}
	var rumors []rumorRow
	if err := db.conn.Select(&rumors, "SELECT id, subject, content, truth, relevance, known_by_json FROM rumors ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load rumors: %w", err)
	}
	for _, row := range rumors {
		r := reputation.Rumor{
			ID:        reputation.RumorID(row.ID),
			Subject:   social.EntityID(row.Subject),
			Content:   row.Content,
			Truth:     row.Truth,
			Relevance: row.Relevance,
		}
		if err := json.Unmarshal([]byte(row.KnownByJSON), &r.KnownBy); err != nil {
			return nil, fmt.Errorf("decode known_by %s: %w", row.ID, err)
		}
		snap.Rumors = append(snap.Rumors, r)
	}

	type unitRow struct {
		ID            string  `db:"id"`
		Type          string  `db:"type"`
		Content       string  `db:"content"`
		Sensitivity   float64 `db:"sensitivity"`
		Originator    string  `db:"originator"`
		KnowledgeJSON string  `db:"knowledge_json"`
	}
	var units []unitRow
	if err := db.conn.Select(&units, "SELECT id, type, content, sensitivity, originator, knowledge_json FROM info_units ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load info units: %w", err)
	}
	for _, row := range units {
		u := diffusion.Unit{
			ID:          diffusion.UnitID(row.ID),
			Type:        row.Type,
			Content:     row.Content,
			Sensitivity: row.Sensitivity,
			Originator:  social.EntityID(row.Originator),
		}
		if err := json.Unmarshal([]byte(row.KnowledgeJSON), &u.Knowledge); err != nil {
			return nil, fmt.Errorf("decode knowledge %s: %w", row.ID, err)
		}
		snap.Units = append(snap.Units, u)
	}

	type channelRow struct {
		ID               string  `db:"id"`
		Type             string  `db:"type"`
		Bandwidth        float64 `db:"bandwidth"`
		Noise            float64 `db:"noise"`
		ParticipantsJSON string  `db:"participants_json"`
	}
	var channels []channelRow
	if err := db.conn.Select(&channels, "SELECT id, type, bandwidth, noise, participants_json FROM channels ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load channels: %w", err)
	}
	for _, row := range channels {
		c := diffusion.Channel{
			ID:        row.ID,
			Type:      row.Type,
			Bandwidth: row.Bandwidth,
			Noise:     row.Noise,
		}
		if err := json.Unmarshal([]byte(row.ParticipantsJSON), &c.Participants); err != nil {
			return nil, fmt.Errorf("decode participants %s: %w", row.ID, err)
		}
		snap.Channels = append(snap.Channels, c)
	}

	return snap, nil
}
