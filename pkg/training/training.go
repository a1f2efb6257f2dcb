// Package training holds the GC training exercises and grades submissions.
package training

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultCatalog []byte

const PassPercent = 70.0

var ErrExerciseNotFound = errors.New("training: exercise not found")

type Question struct {
	ID        string  `yaml:"id" json:"id"`
	Prompt    string  `yaml:"prompt" json:"prompt"`
	Answer    float64 `yaml:"answer" json:"-"`
	Tolerance float64 `yaml:"tolerance" json:"-"`
	Unit      string  `yaml:"unit" json:"unit,omitempty"`
}

type Exercise struct {
	ID         string     `yaml:"id" json:"id"`
	Title      string     `yaml:"title" json:"title"`
	Difficulty string     `yaml:"difficulty" json:"difficulty"`
	Topic      string     `yaml:"topic" json:"topic"`
	Questions  []Question `yaml:"questions" json:"questions"`
}

type catalogFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

type Catalog struct {
	exercises []Exercise
	byID      map[string]int
}

// LoadCatalog reads path, falling back to the built-in exercises when the
// file does not exist.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || path == "" {
		data = defaultCatalog
	} else if err != nil {
		return nil, fmt.Errorf("read training catalog: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse training catalog: %w", err)
	}
	c := &Catalog{byID: make(map[string]int, len(f.Exercises))}
	for _, ex := range f.Exercises {
		if ex.ID == "" {
			return nil, fmt.Errorf("training catalog: exercise %q has no id", ex.Title)
		}
		if _, dup := c.byID[ex.ID]; dup {
			return nil, fmt.Errorf("training catalog: duplicate exercise id %q", ex.ID)
		}
		c.byID[ex.ID] = len(c.exercises)
		c.exercises = append(c.exercises, ex)
	}
	return c, nil
}

func (c *Catalog) List() []Exercise {
	out := make([]Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

func (c *Catalog) Get(id string) (Exercise, error) {
	i, ok := c.byID[id]
	if !ok {
		return Exercise{}, ErrExerciseNotFound
	}
	return c.exercises[i], nil
}

type Result struct {
	QuestionID string   `json:"question_id"`
	Given      *float64 `json:"given"`
	Expected   float64  `json:"expected"`
	Correct    bool     `json:"correct"`
}

type Grade struct {
	ExerciseID string   `json:"exercise_id"`
	Score      int      `json:"score"`
	Total      int      `json:"total"`
	Percent    float64  `json:"percent"`
	Passed     bool     `json:"passed"`
	Results    []Result `json:"results"`
}

// GradeSubmission marks each answer within the question's tolerance as correct.
// Unanswered questions count as wrong.
func GradeSubmission(ex Exercise, answers map[string]float64) Grade {
	g := Grade{ExerciseID: ex.ID, Total: len(ex.Questions), Results: make([]Result, 0, len(ex.Questions))}
	for _, q := range ex.Questions {
		r := Result{QuestionID: q.ID, Expected: q.Answer}
		if v, ok := answers[q.ID]; ok {
			given := v
			r.Given = &given
			tol := math.Max(q.Tolerance, 1e-9)
			r.Correct = math.Abs(v-q.Answer) <= tol
		}
		if r.Correct {
			g.Score++
		}
		g.Results = append(g.Results, r)
	}
	sort.SliceStable(g.Results, func(i, j int) bool { return g.Results[i].QuestionID < g.Results[j].QuestionID })
	if g.Total > 0 {
		g.Percent = math.Round(1000*float64(g.Score)/float64(g.Total)) / 10
	}
	g.Passed = g.Percent >= PassPercent
	return g
}
