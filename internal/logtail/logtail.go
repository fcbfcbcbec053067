package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Line is a decoded zerolog JSON record.
type Line struct {
	Time      time.Time
	Level     string
	Component string
	Message   string
	Fields    map[string]string
	Raw       string
}

// Parse decodes a zerolog JSON line. Lines that are not JSON come back with
// only Raw set.
func Parse(raw string) Line {
	line := Line{Raw: raw}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return line
	}
	for key, value := range payload {
		text := fmt.Sprint(value)
		switch key {
		case "time":
			if t, err := time.Parse(time.RFC3339, text); err == nil {
				line.Time = t
			}
		case "level":
			line.Level = text
		case "component":
			line.Component = text
		case "message":
			line.Message = text
		default:
			if line.Fields == nil {
				line.Fields = make(map[string]string)
			}
			line.Fields[key] = text
		}
	}
	return line
}

// Format renders a parsed line as "15:04:05 INF [component] message k=v".
func (l Line) Format() string {
	if l.Message == "" && l.Level == "" {
		return l.Raw
	}
	var b strings.Builder
	if !l.Time.IsZero() {
		b.WriteString(l.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(levelTag(l.Level))
	if l.Component != "" {
		b.WriteString(" [")
		b.WriteString(l.Component)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(l.Message)

	keys := make([]string, 0, len(l.Fields))
	for k := range l.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, l.Fields[k])
	}
	return b.String()
}

func levelTag(level string) string {
	switch strings.ToLower(level) {
	case "trace":
		return "TRC"
	case "debug":
		return "DBG"
	case "info":
		return "INF"
	case "warn":
		return "WRN"
	case "error":
		return "ERR"
	case "fatal":
		return "FTL"
	case "panic":
		return "PNC"
	default:
		return "???"
	}
}
