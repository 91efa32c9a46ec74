// Package moderation masks blacklisted words in outbound message content
// before it reaches the transport.
package moderation

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"

	"chatlink/errors"
)

//go:embed censored/*
var censoredFolder embed.FS

// WordList groups the blacklisted words of one language dictionary.
type WordList struct {
	Language string
	Words    []string
}

// LoadWordLists scans the embedded censored directory, treating each .txt
// file as a language dictionary (e.g. "en.txt" -> "en").
func LoadWordLists() ([]WordList, error) {
	entries, err := fs.ReadDir(censoredFolder, "censored")
	if err != nil {
		return nil, err
	}

	var lists []WordList
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := censoredFolder.ReadFile("censored/" + entry.Name())
		if err != nil {
			return nil, err
		}

		unique := make(map[string]struct{})
		// Use a scanner to handle different line endings (\n vs \r\n) correctly
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}

		words := make([]string, 0, len(unique))
		for w := range unique {
			words = append(words, w)
		}
		lists = append(lists, WordList{
			Language: strings.TrimSuffix(entry.Name(), ".txt"),
			Words:    words,
		})
	}

	if len(lists) == 0 {
		return nil, errors.ErrEmptyWords
	}
	return lists, nil
}
