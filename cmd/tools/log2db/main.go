// Command log2db imports binary session logs into a SQLite database so
// sessions can be queried and joined offline.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fsae-data/datalogger/internal/frame"
)

var dbPath = flag.String("db", "sensor_logs.db", "SQLite database path")

const schema = `
CREATE TABLE IF NOT EXISTS import_sessions (
	id           TEXT PRIMARY KEY,
	source_file  TEXT NOT NULL,
	imported_at  TEXT NOT NULL DEFAULT (datetime('now')),
	frame_count  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS frames (
	session_id       TEXT NOT NULL REFERENCES import_sessions(id),
	seq              INTEGER NOT NULL,
	timestamp_ticks  INTEGER NOT NULL,
	sensor           TEXT NOT NULL,
	reading          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_frames_session ON frames(session_id, seq);
`

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: log2db [-db path] <file.log> [file.log ...]")
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	for _, path := range flag.Args() {
		session, count, err := importFile(db, path)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		log.Printf("imported %s: %d frames as session %s", path, count, session)
	}
}

func importFile(db *sql.DB, path string) (string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	session := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", 0, err
	}
	defer tx.Rollback()

	insert, err := tx.Prepare(
		"INSERT INTO frames (session_id, seq, timestamp_ticks, sensor, reading) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return "", 0, err
	}
	defer insert.Close()

	d := frame.NewDecoder(f)
	count := 0
	for {
		fr, err := d.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, fmt.Errorf("frame %d: %w", count, err)
		}
		reading, err := readingJSON(fr)
		if err != nil {
			return "", 0, fmt.Errorf("frame %d: %w", count, err)
		}
		if _, err := insert.Exec(session, count, int64(fr.Timestamp), frame.SensorName(fr.SensorID), reading); err != nil {
			return "", 0, err
		}
		count++
	}

	if _, err := tx.Exec(
		"INSERT INTO import_sessions (id, source_file, frame_count) VALUES (?, ?, ?)",
		session, path, count); err != nil {
		return "", 0, err
	}
	return session, count, tx.Commit()
}

func readingJSON(f *frame.Frame) (string, error) {
	var v any
	switch f.SensorID {
	case frame.SensorRangeArray:
		readings, err := f.RangeReadings()
		if err != nil {
			return "", err
		}
		v = readings
	case frame.SensorAccelerometer, frame.SensorGyroscope:
		x, y, z, err := f.Triaxial()
		if err != nil {
			return "", err
		}
		v = map[string]int16{"x": x, "y": y, "z": z}
	case frame.SensorWheelSpeed:
		rpm, err := f.WheelRPM()
		if err != nil {
			return "", err
		}
		v = rpm[:]
	default:
		v = f.Payload
	}
	out, err := json.Marshal(v)
	return string(out), err
}
