package sim

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/cablegrove/tanksim/tank"
)

// snapshotVersion is bumped when the ledger layout changes incompatibly.
const snapshotVersion = 1

// SnapshotHeader is the plain-JSON first line of a snapshot file, readable
// without decoding the body.
type SnapshotHeader struct {
	Version int   `json:"version"`
	Tick    int64 `json:"tick"`
}

// WriteSnapshot persists a ledger to a zstd-compressed file: one JSON header
// line followed by the gob-encoded ledger. The simulation core never calls
// this; it is the persistence collaborator used by the CLI.
func WriteSnapshot(path string, led *tank.Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriter(enc)
	defer bw.Flush()

	hb, _ := json.Marshal(SnapshotHeader{Version: snapshotVersion, Tick: led.Tick})
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(led); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

// ReadSnapshot loads a ledger written by WriteSnapshot.
func ReadSnapshot(path string) (*tank.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	headerLine, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}
	var header SnapshotHeader
	if err := json.Unmarshal(headerLine, &header); err != nil {
		return nil, fmt.Errorf("decoding snapshot header: %w", err)
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", header.Version)
	}

	led := &tank.Ledger{}
	if err := gob.NewDecoder(br).Decode(led); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	return led, nil
}
