package runlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"llm-tweet-bot/internal/types"
)

const ext = ".jsonl"

// Entry is one line of the run history.
type Entry struct {
	Time      string   `json:"time"`
	Outcome   string   `json:"outcome"`
	Symbols   []string `json:"symbols,omitempty"`
	Chars     int      `json:"chars,omitempty"`
	PostID    string   `json:"post_id,omitempty"`
	Permalink string   `json:"permalink,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// Log appends run results to one JSONL file per UTC day under dir.
type Log struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

func New(dir string) *Log {
	if dir == "" {
		dir = "logs"
	}
	return &Log{dir: dir, now: time.Now}
}

func (l *Log) dailyPath(t time.Time) string {
	return filepath.Join(l.dir, t.UTC().Format("2006-01-02")+ext)
}

// Append records result in today's file.
func (l *Log) Append(result *types.RunResult) error {
	if result == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e := Entry{
		Time:      now.UTC().Format(time.RFC3339),
		Outcome:   string(result.Outcome),
		Chars:     len([]rune(result.Text)),
		PostID:    result.PostID,
		Permalink: result.Permalink,
		Reason:    result.Reason,
	}
	for _, it := range result.Selection {
		e.Symbols = append(e.Symbols, it.Symbol)
	}

	p := l.dailyPath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips day files last modified more than retentionDays ago.
// A non-positive retention disables compression.
func (l *Log) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := l.now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(l.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, d := range entries {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			continue
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := gzipFile(filepath.Join(l.dir, d.Name())); err != nil {
			return err
		}
	}
	return nil
}

// gzipFile replaces p with p.gz. An existing p.gz wins and p is removed.
func gzipFile(p string) error {
	gz := p + ".gz"
	if _, err := os.Stat(gz); err == nil {
		return os.Remove(p)
	}

	in, err := os.Open(p)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		os.Remove(gz)
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(p)
}
