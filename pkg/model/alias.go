package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Aliases maps gene ids to human readable gene names.
type Aliases map[string]string

func (a Aliases) Lookup(geneID string) (string, bool) {
	alias, ok := a[geneID]
	return alias, ok
}

// LoadAliases reads the tab separated alias file (geneid<TAB>alias).
// A missing file gives an empty table and fs.ErrNotExist, which callers may ignore.
func LoadAliases(path string) (Aliases, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Aliases{}, err
		}
		return nil, fmt.Errorf("open aliases: %w", err)
	}
	defer f.Close()
	return ReadAliases(f)
}

func ReadAliases(r io.Reader) (Aliases, error) {
	aliases := Aliases{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		gene, alias, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("aliases line %d: expected geneid<TAB>alias", lineNo)
		}
		if rest, _, found := strings.Cut(alias, "\t"); found {
			alias = rest
		}
		aliases[gene] = alias
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	return aliases, nil
}
