// Command crudfields-scaffold interactively builds a field configuration
// document and writes it as YAML, ready for panel.WithFieldConfigFS.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

func main() {
	output := flag.String("output", "fields.yml", "file to write the configuration to")
	operation := flag.String("operation", "", "operation id (prompted when empty)")
	flag.Parse()

	doc, err := run(context.Background(), &surveyPrompter{}, *operation)
	if err != nil {
		if errors.Is(err, errInterrupted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		log.Fatalf("Failed to scaffold configuration: %v", err)
	}

	data, err := doc.Marshal()
	if err != nil {
		log.Fatalf("Failed to encode configuration: %v", err)
	}

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Configuration written to %s\n", *output)
}

var errInterrupted = errors.New("scaffold: interrupted")

type surveyPrompter struct{}

func (surveyPrompter) Input(_ context.Context, message, fallback string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Default: fallback}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Confirm(_ context.Context, message string, fallback bool) (bool, error) {
	var out bool
	prompt := &survey.Confirm{Message: message, Default: fallback}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Select(_ context.Context, message string, options []string) (string, error) {
	var out string
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errInterrupted
	}
	return err
}
