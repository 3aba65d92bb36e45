// Package mdstore provides a markdown-file implementation of DayPlanRepository.
package mdstore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/infra/markdown"
	"gopkg.in/yaml.v3"
)

// Ensure Store implements domain.DayPlanRepository.
var _ domain.DayPlanRepository = (*Store)(nil)

// Store reads day plans from the daily notes below an origin directory and
// writes merged blocks back into the notes' block sections.
type Store struct {
	logger *slog.Logger
}

// New creates a new Store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{logger: logger}
}

// frontMatter holds the front matter fields blockary reads.
type frontMatter struct {
	Date yaml.Node `yaml:"date"`
}

// Load reads every *.md note below the origin directory. Hidden
// directories are not entered. Notes without the block section or that
// cannot be read are returned as skips.
func (s *Store) Load(origin domain.Origin) ([]domain.DayPlan, []domain.Skip, error) {
	root, err := filepath.Abs(origin.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", origin.Path, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("open notes of %s: %w", origin.Name, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("open notes of %s: %s is not a directory", origin.Name, root)
	}

	section := origin.Section
	if section == "" {
		section = domain.DefaultSection
	}

	var plans []domain.DayPlan
	var skips []domain.Skip
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			skips = append(skips, domain.Skip{Path: path, Err: walkErr})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		plan, err := s.read(origin.Name, root, path, section)
		if err != nil {
			skips = append(skips, domain.Skip{Path: path, Err: err})
			return nil
		}
		plans = append(plans, plan)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk notes of %s: %w", origin.Name, err)
	}

	s.logger.Debug("notes loaded", "origin", origin.Name, "plans", len(plans), "skipped", len(skips))
	return plans, skips, nil
}

func (s *Store) read(originName, root, path, section string) (domain.DayPlan, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.DayPlan{}, err
	}

	doc := markdown.Parse(content)
	items, err := doc.SectionItems(section)
	if err != nil {
		return domain.DayPlan{}, err
	}

	src := domain.MarkdownSource{AbsPath: path, BaseDir: root, Section: section}
	plan := domain.NewDayPlan(originName, src, items)
	if d, ok := s.frontMatterDate(path, doc.FrontMatter()); ok {
		plan = plan.WithDate(d)
	}
	return plan, nil
}

// frontMatterDate returns the day of a "date:" front matter field.
// Timestamps count by their date part.
func (s *Store) frontMatterDate(path string, raw []byte) (domain.Date, bool) {
	if len(raw) == 0 {
		return domain.Date{}, false
	}
	var fm frontMatter
	if err := yaml.Unmarshal(raw, &fm); err != nil {
		s.logger.Warn("ignoring invalid front matter", "path", path, "error", err)
		return domain.Date{}, false
	}
	if fm.Date.Kind != yaml.ScalarNode {
		return domain.Date{}, false
	}
	value := strings.TrimSpace(fm.Date.Value)
	if len(value) > 10 {
		value = value[:10]
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		s.logger.Warn("ignoring front matter date", "path", path, "date", fm.Date.Value)
		return domain.Date{}, false
	}
	return d, true
}

// Save writes the plan's blocks into its note's block section, one
// "- " list item per block. It reports whether the note changed.
func (s *Store) Save(plan domain.DayPlan) (bool, error) {
	src, ok := plan.Source.(domain.MarkdownSource)
	if !ok {
		return false, nil
	}

	info, err := os.Stat(src.AbsPath)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", src.AbsPath, err)
	}
	content, err := os.ReadFile(src.AbsPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", src.AbsPath, err)
	}

	section := src.Section
	if section == "" {
		section = domain.DefaultSection
	}

	rendered := plan.RenderBlocks()
	lines := make([]string, 0, len(rendered))
	for _, r := range rendered {
		lines = append(lines, "- "+r)
	}

	updated, err := markdown.Parse(content).ReplaceSection(section, lines)
	if errors.Is(err, domain.ErrSectionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if bytes.Equal(updated, content) {
		return false, nil
	}

	if err := writeAtomic(src.AbsPath, updated, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", src.AbsPath, err)
	}
	s.logger.Debug("note written", "origin", plan.Origin, "note", src.NoteID(), "blocks", len(plan.Blocks))
	return true, nil
}

func writeAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	file, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	name := file.Name()
	cleanup := func() {
		_ = os.Remove(name)
	}
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		cleanup()
		return err
	}
	if err := file.Chmod(perm); err != nil {
		_ = file.Close()
		cleanup()
		return err
	}
	if err := file.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
