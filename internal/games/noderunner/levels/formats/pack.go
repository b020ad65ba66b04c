package formats

import (
	"bufio"
	"bytes"
	"strings"
)

// PackExtension is the extension of multi-level pack files.
const PackExtension = ".nlp"

// PackHeader is the metadata block at the top of a pack file.
type PackHeader struct {
	Name        string
	Author      string
	Description string
}

// Pack is a parsed pack file.
type Pack struct {
	PackHeader
	Levels []Level
}

// ParsePack parses a level pack:
//
//	## Pack Name
//	## Author: someone
//	## Description: text
//	---
//	<level in text format>
//	---
//	<level in text format>
//
// Anything before the first "---" is header. Sections that fail to parse
// are skipped; the number of skipped sections is returned.
func ParsePack(data []byte) (Pack, int, error) {
	var (
		pack     Pack
		section  []string
		inLevels bool
		skipped  int
	)

	flush := func() {
		if len(section) == 0 {
			return
		}
		lvl, err := ParseText([]byte(strings.Join(section, "\n")))
		if err != nil {
			skipped++
		} else {
			pack.Levels = append(pack.Levels, lvl)
		}
		section = section[:0]
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "---" {
			flush()
			inLevels = true
			continue
		}
		if !inLevels {
			continue
		}
		section = append(section, line)
	}
	if err := sc.Err(); err != nil {
		return Pack{}, 0, err
	}
	flush()

	pack.PackHeader = ParsePackHeader(data)
	for i := range pack.Levels {
		pack.Levels[i].Author = pack.Author
	}
	return pack, skipped, nil
}

// ParsePackHeader reads only the "##" metadata lines. It stops at the
// first separator or single "#" line.
func ParsePackHeader(data []byte) PackHeader {
	var h PackHeader
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "## Author:"):
			h.Author = strings.TrimSpace(strings.TrimPrefix(line, "## Author:"))
		case strings.HasPrefix(line, "## Description:"):
			h.Description = strings.TrimSpace(strings.TrimPrefix(line, "## Description:"))
		case strings.HasPrefix(line, "##"):
			if h.Name == "" {
				h.Name = strings.TrimSpace(line[2:])
			}
		case line == "---" || strings.HasPrefix(line, "#"):
			return h
		}
	}
	return h
}
