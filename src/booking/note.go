package booking

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	noteSep      = " | "
	backupPrefix = "backup: "
)

// BuildNote renders items as numbered lines:
//
//	1. 2024-05-01 | Sesi 1 | Zara | backup: Yuna (2024-05-02 | Sesi 2)
func BuildNote(items []CartItem) string {
	lines := make([]string, 0, len(items))
	for idx, item := range items {
		line := fmt.Sprintf("%d. %s | %s | %s", idx+1, item.Date, item.Session, item.MemberName)
		if item.HasBackup() {
			line += fmt.Sprintf(" | backup: %s (%s | %s)", item.BackupMemberName, item.BackupDate, item.BackupSession)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

type NoteBackup struct {
	MemberName string `json:"member_name"`
	Date       string `json:"date"`
	Session    string `json:"session"`
}

type NoteLine struct {
	Index      int         `json:"index"`
	Date       string      `json:"date"`
	Session    string      `json:"session"`
	MemberName string      `json:"member_name"`
	Backup     *NoteBackup `json:"backup,omitempty"`
}

// ParseNote reads back a note produced by BuildNote.
func ParseNote(note string) ([]NoteLine, error) {
	if note == "" {
		return nil, nil
	}
	var out []NoteLine
	for n, raw := range strings.Split(note, "\n") {
		head, rest, ok := strings.Cut(raw, ". ")
		if !ok {
			return nil, fmt.Errorf("line %d: missing index", n+1)
		}
		idx, err := strconv.Atoi(head)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad index %q", n+1, head)
		}
		parts := strings.SplitN(rest, noteSep, 4)
		if len(parts) < 3 {
			return nil, fmt.Errorf("line %d: expected date, session and member", n+1)
		}
		line := NoteLine{Index: idx, Date: parts[0], Session: parts[1], MemberName: parts[2]}
		if len(parts) == 4 {
			b, err := parseBackup(parts[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %s", n+1, err.Error())
			}
			line.Backup = b
		}
		out = append(out, line)
	}
	return out, nil
}

func parseBackup(s string) (*NoteBackup, error) {
	if !strings.HasPrefix(s, backupPrefix) || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed backup %q", s)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, backupPrefix), ")")
	open := strings.LastIndex(body, " (")
	if open < 0 {
		return nil, fmt.Errorf("malformed backup %q", s)
	}
	date, session, ok := strings.Cut(body[open+2:], noteSep)
	if !ok {
		return nil, fmt.Errorf("malformed backup slot %q", s)
	}
	return &NoteBackup{MemberName: body[:open], Date: date, Session: session}, nil
}
