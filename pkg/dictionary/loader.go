package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/charmbracelet/log"
)

// SkippedLine records a word list entry that was rejected during loading.
type SkippedLine struct {
	Line int
	Text string
	Err  error
}

// LoadReport summarises a word list load.
type LoadReport struct {
	Added      int
	Duplicates int
	Blank      int
	Skipped    []SkippedLine
	Took       time.Duration
}

// SkippedCount returns how many lines were rejected.
func (r LoadReport) SkippedCount() int {
	return len(r.Skipped)
}

// maxLineLength caps a word list line. Longer lines are skipped, not loaded.
const maxLineLength = 4096

// Load reads one word per line from r into lex. Lines are trimmed and lowercased;
// lines with characters outside a-z, or longer than maxLineLength, are recorded
// in the report and skipped. Only a read failure is returned as an error.
func Load(r io.Reader, lex Lexicon) (LoadReport, error) {
	var report LoadReport
	start := time.Now()

	reader := bufio.NewReader(r)
	lineNum := 0
	for {
		line, tooLong, err := readLine(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Took = time.Since(start)
			return report, fmt.Errorf("failed to read word list at line %d: %w", lineNum+1, err)
		}
		lineNum++

		if tooLong {
			report.Skipped = append(report.Skipped, SkippedLine{Line: lineNum, Err: ErrLineTooLong})
			log.Debugf("Skipping line %d: %v", lineNum, ErrLineTooLong)
			continue
		}

		word := utils.NormalizeWord(line)
		if word == "" {
			report.Blank++
			continue
		}

		before := lex.Len()
		if err := lex.AddWord(word); err != nil {
			report.Skipped = append(report.Skipped, SkippedLine{Line: lineNum, Text: word, Err: err})
			log.Debugf("Skipping line %d (%q): %v", lineNum, word, err)
			continue
		}
		if lex.Len() == before {
			report.Duplicates++
			continue
		}
		report.Added++
	}
	report.Took = time.Since(start)
	return report, nil
}

// readLine returns the next line without its line ending. A line over
// maxLineLength is drained and reported as tooLong with no text.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong && len(buf)+len(chunk) > maxLineLength {
			tooLong, buf = true, nil
		}
		if !tooLong {
			buf = append(buf, chunk...)
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// LoadFile validates and loads a word list file into a fresh Lexicon.
func LoadFile(path string, backend Backend) (Lexicon, LoadReport, error) {
	lex, err := New(backend)
	if err != nil {
		return nil, LoadReport{}, err
	}

	if err := ValidateFileFormat(path, FormatText); err != nil {
		return nil, LoadReport{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	report, err := Load(file, lex)
	if err != nil {
		return nil, report, err
	}

	log.Debugf("Loaded %d words from %s in %v (%d skipped, %d duplicates)",
		report.Added, path, report.Took, report.SkippedCount(), report.Duplicates)
	if report.SkippedCount() > 0 {
		log.Warnf("Skipped %d malformed lines in %s", report.SkippedCount(), path)
	}
	return lex, report, nil
}
