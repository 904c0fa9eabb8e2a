package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindful/internal/modules/practice/domain"
	practiceout "mindful/internal/modules/practice/port/out"
	technique "mindful/internal/modules/technique/domain"
	"mindful/internal/platform/logging"
	"mindful/internal/platform/markdown"
)

type dayFrontmatter struct {
	SchemaVersion     int            `yaml:"schema_version"`
	Date              string         `yaml:"date"`
	MeditationSeconds int            `yaml:"meditation_seconds"`
	BreathingSessions int            `yaml:"breathing_sessions"`
	TechniqueUsage    map[string]int `yaml:"technique_usage,omitempty"`
	UpdatedAt         string         `yaml:"updated_at,omitempty"`
}

// VaultRecordStore keeps one markdown note per day under practice/YYYY/MM/DD.md.
type VaultRecordStore struct {
	vaultPath string
	logger    *logging.Logger
}

func NewVaultRecordStore(vaultPath string, logger *logging.Logger) practiceout.RecordStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &VaultRecordStore{vaultPath: vaultPath, logger: logger}
}

func (s *VaultRecordStore) notePath(day time.Time) string {
	return filepath.Join(s.vaultPath, "practice", day.Format("2006"), day.Format("01"), day.Format("02")+".md")
}

func (s *VaultRecordStore) Load(ctx context.Context, day time.Time) (domain.DayEntry, error) {
	day = domain.Day(day)
	path := s.notePath(day)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DayEntry{Day: day, Record: domain.EmptyRecord()}, nil
		}
		return domain.DayEntry{}, fmt.Errorf("read %s: %w", path, err)
	}
	entry, _ := s.decode(ctx, day, path, string(content))
	return entry, nil
}

func (s *VaultRecordStore) Save(_ context.Context, entry domain.DayEntry) (string, error) {
	day := domain.Day(entry.Day)
	path := s.notePath(day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create practice directory: %w", err)
	}

	body := ""
	if existing, err := os.ReadFile(path); err == nil {
		body = markdown.Body(string(existing))
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("# Practice %s\n\n## Notes\n", domain.FormatDate(day))
	}
	record := entry.Record.Normalized()
	body = markdown.ReplaceManagedBlock(body, domain.ManagedSummaryStart, domain.ManagedSummaryEnd, summaryBlock(record))

	meta := dayFrontmatter{
		SchemaVersion:     domain.SchemaVersion,
		Date:              domain.FormatDate(day),
		MeditationSeconds: record.MeditationSeconds,
		BreathingSessions: record.BreathingSessions,
		TechniqueUsage:    make(map[string]int, len(record.TechniqueUsage)),
	}
	for id, n := range record.TechniqueUsage {
		meta.TechniqueUsage[string(id)] = n
	}
	if !entry.UpdatedAt.IsZero() {
		meta.UpdatedAt = entry.UpdatedAt.Format(time.RFC3339)
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write practice note: %w", err)
	}
	return path, nil
}

func (s *VaultRecordStore) List(ctx context.Context) ([]domain.DayEntry, error) {
	matches, err := filepath.Glob(filepath.Join(s.vaultPath, "practice", "*", "*", "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob practice notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.DayEntry, 0, len(matches))
	for _, path := range matches {
		day, err := dayFromPath(path)
		if err != nil {
			return nil, err
		}
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		entry, _ := s.decode(ctx, day, path, string(content))
		out = append(out, entry)
	}
	return out, nil
}

// decode never fails the caller: a broken note degrades to an empty record.
func (s *VaultRecordStore) decode(ctx context.Context, day time.Time, path, content string) (domain.DayEntry, error) {
	entry := domain.DayEntry{Day: day, Record: domain.EmptyRecord(), NotePath: path}
	meta := dayFrontmatter{}
	if _, err := markdown.DecodeFrontmatter(content, &meta); err != nil {
		s.logger.Warn(ctx, "malformed practice note, using empty record", zap.String("path", path), zap.Error(err))
		return entry, err
	}
	record := domain.DailyRecord{
		MeditationSeconds: meta.MeditationSeconds,
		BreathingSessions: meta.BreathingSessions,
		TechniqueUsage:    make(map[technique.ID]int, len(meta.TechniqueUsage)),
	}
	for id, n := range meta.TechniqueUsage {
		record.TechniqueUsage[technique.ID(id)] = n
	}
	entry.Record = record.Normalized()
	if meta.UpdatedAt != "" {
		entry.UpdatedAt, _ = time.Parse(time.RFC3339, meta.UpdatedAt)
	}
	return entry, nil
}

func dayFromPath(path string) (time.Time, error) {
	dayName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	month := filepath.Base(filepath.Dir(path))
	year := filepath.Base(filepath.Dir(filepath.Dir(path)))
	day, err := domain.ParseDate(year + "-" + month + "-" + dayName)
	if err != nil {
		return time.Time{}, fmt.Errorf("practice note %s: %w", path, err)
	}
	return day, nil
}

func summaryBlock(record domain.DailyRecord) string {
	lines := []string{
		fmt.Sprintf("- Meditation: %d min", record.MeditationSeconds/60),
		fmt.Sprintf("- Breathing: %d sessions", record.BreathingSessions),
	}
	ids := make([]string, 0, len(record.TechniqueUsage))
	for id := range record.TechniqueUsage {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("  - %s x%d", id, record.TechniqueUsage[technique.ID(id)]))
	}
	lines = append(lines, fmt.Sprintf("- Total: %d min", record.TotalPracticeMinutes()))
	return strings.Join(lines, "\n")
}
