package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-crudfields/pkg/panel"
	"github.com/goliatone/go-crudfields/pkg/schemaimport"
)

func main() {
	config := flag.String("config", "", "directory holding field configuration documents")
	operation := flag.String("operation", "create", "operation to render")
	renderer := flag.String("renderer", "vanilla", "renderer to use")
	output := flag.String("output", "", "output file (stdout if empty)")
	title := flag.String("title", "", "form title override")
	action := flag.String("action", "", "form action URL")
	method := flag.String("method", "", "form HTTP method")
	schema := flag.String("schema", "", "OpenAPI document to import fields from")
	schemaName := flag.String("schema-name", "", "component schema name inside the OpenAPI document")
	flag.Parse()

	ctx := context.Background()

	var options []panel.Option
	if *config != "" {
		options = append(options, panel.WithFieldConfigFS(os.DirFS(*config)))
	}

	p := panel.New(options...)

	if *schema != "" {
		if *schemaName == "" {
			log.Fatalf("-schema requires -schema-name")
		}
		importer := schemaimport.New()
		imported, err := importer.FieldsFromFile(ctx, *schema, *schemaName)
		if err != nil {
			log.Fatalf("Failed to import schema: %v", err)
		}
		if err := p.Operation(*operation).Fields().AddFields(imported...); err != nil {
			log.Fatalf("Failed to register imported fields: %v", err)
		}
	}

	outputHTML, err := p.Generate(ctx, panel.Request{
		Operation: *operation,
		Renderer:  *renderer,
		Title:     *title,
		Action:    *action,
		Method:    *method,
	})
	if err != nil {
		log.Fatalf("Failed to generate form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, outputHTML, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(outputHTML))
	}
}
