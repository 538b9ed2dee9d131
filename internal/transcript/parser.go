// Package transcript parses the timestamped annotation files produced by the
// transcriber. An annotation file holds two-line records:
//
//	Start: 0:01:02 - End: 0:01:07
//	the words spoken in that span
//
// separated by blank lines. Cleaning strips the timestamp lines and joins the
// spoken text into one continuous string for the reduction and NER stages;
// segment parsing keeps the timestamps for database ingestion.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"podcast-digest/internal/domain/entity"
)

// timestampPrefix marks the timing line of an annotation record.
const timestampPrefix = "Start:"

// Clean reads annotation text and returns the spoken content as one string:
// timestamp lines and blank lines are dropped, remaining lines are trimmed
// and joined with single spaces. Invalid UTF-8 bytes are replaced rather
// than failing, matching the tolerant decoding of the upstream transcriber.
func Clean(r io.Reader) (string, error) {
	var kept []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToValidUTF8(scanner.Text(), "�"))
		if line == "" || strings.HasPrefix(line, timestampPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan annotation: %w", err)
	}

	return strings.Join(kept, " "), nil
}

// CleanFile is Clean applied to a file on disk.
func CleanFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open annotation: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Clean(f)
}

// ParseSegments reads annotation text into timestamped segments for
// ingestion. episodeID becomes the EpisodeID of every segment, conventionally
// the annotation file's base name. Records whose timing line cannot be parsed
// yield an entity.ErrInvalidSegment-wrapped error through the errs callback
// and are skipped; parsing continues with the next record.
func ParseSegments(episodeID string, r io.Reader, errs func(error)) ([]*entity.Segment, error) {
	var segments []*entity.Segment
	var pending *entity.Segment

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToValidUTF8(scanner.Text(), "�"))
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, timestampPrefix) {
			start, end, err := parseTimeRange(line)
			if err != nil {
				if errs != nil {
					errs(fmt.Errorf("%w: %v", entity.ErrInvalidSegment, err))
				}
				pending = nil
				continue
			}
			pending = &entity.Segment{EpisodeID: episodeID, Start: start, End: end}
			continue
		}

		// Text line: completes the pending record, if any.
		if pending == nil {
			continue
		}
		pending.Text = line
		segments = append(segments, pending)
		pending = nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan annotation: %w", err)
	}

	return segments, nil
}

// parseTimeRange parses "Start: H:MM:SS - End: H:MM:SS" into second offsets.
func parseTimeRange(line string) (start, end float64, err error) {
	parts := strings.SplitN(line, " - ", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("missing 'Start - End' separator in %q", line)
	}

	startStr := strings.TrimSpace(strings.TrimPrefix(parts[0], "Start:"))
	endStr := strings.TrimSpace(strings.TrimPrefix(parts[1], "End:"))

	if start, err = parseClock(startStr); err != nil {
		return 0, 0, fmt.Errorf("start time %q: %w", startStr, err)
	}
	if end, err = parseClock(endStr); err != nil {
		return 0, 0, fmt.Errorf("end time %q: %w", endStr, err)
	}
	return start, end, nil
}

// parseClock converts "H:MM:SS", "MM:SS" or fractional variants like
// "0:00:04.500000" into seconds.
func parseClock(s string) (float64, error) {
	fields := strings.Split(s, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, fmt.Errorf("expected H:MM:SS or MM:SS")
	}

	var total float64
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, err
		}
		if value < 0 {
			return 0, fmt.Errorf("negative component %q", field)
		}
		total = total*60 + value
	}
	return total, nil
}
