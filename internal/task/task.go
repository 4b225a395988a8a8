package task

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//ErrMalformedTask marks task input that cannot be turned into a Task.
var ErrMalformedTask = errors.New("malformed task input")

//FilterSet holds the recognized search filters. All keys are optional; empty
//values are omitted from the constructed query.
type FilterSet struct {
	Keywords        string `yaml:"keywords" json:"keywords,omitempty"`
	Location        string `yaml:"location" json:"location,omitempty"`
	JobType         string `yaml:"jobType" json:"jobType,omitempty"`
	ExperienceLevel string `yaml:"experienceLevel" json:"experienceLevel,omitempty"`
	Remote          string `yaml:"remote" json:"remote,omitempty"`
	DatePosted      string `yaml:"datePosted" json:"datePosted,omitempty"`
	EasyApply       bool   `yaml:"easyApply" json:"easyApply,omitempty"`
	Company         string `yaml:"company" json:"company,omitempty"`
	Industry        string `yaml:"industry" json:"industry,omitempty"`
	Salary          string `yaml:"salary" json:"salary,omitempty"`
}

//Task pairs a natural-language goal with its filters. Immutable once built
//and consumed once per search invocation.
type Task struct {
	Goal    string    `yaml:"goal" json:"goal"`
	Filters FilterSet `yaml:"filters" json:"filters"`
}

//Load reads a task description from a YAML file. JSON works too since YAML
//is a superset of it.
func Load(path string) (Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrMalformedTask, err)
	}
	return Parse(data)
}

//Parse decodes a task description and validates its required structure.
func Parse(data []byte) (Task, error) {
	var t Task
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrMalformedTask, err)
	}
	if strings.TrimSpace(t.Goal) == "" {
		return Task{}, fmt.Errorf("%w: a goal is required", ErrMalformedTask)
	}
	return t, nil
}
