package leaderboard

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// FileStore keeps win counts in a CSV-like text file, loaded once at open
// and rewritten on every recorded win.
type FileStore struct {
	path   string
	mu     sync.Mutex
	scores map[string]int
}

func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path:   path,
		scores: make(map[string]int),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	file, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open leaderboard file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ",", 2)
		if len(parts) != 2 {
			continue
		}
		wins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		fs.scores[strings.TrimSpace(parts[0])] = wins
	}
	return scanner.Err()
}

// save rewrites the whole file. Caller holds the mutex.
func (fs *FileStore) save() error {
	file, err := os.Create(fs.path)
	if err != nil {
		return fmt.Errorf("write leaderboard file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for username, wins := range fs.scores {
		fmt.Fprintf(w, "%s,%d\n", username, wins)
	}
	return w.Flush()
}

func (fs *FileStore) RecordWin(_ context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return nil
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.scores[username]++
	return fs.save()
}

func (fs *FileStore) Top(_ context.Context, n int) ([]Entry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entries := make([]Entry, 0, len(fs.scores))
	for username, wins := range fs.scores {
		entries = append(entries, Entry{Username: username, Wins: wins})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Username < entries[j].Username
	})

	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}
