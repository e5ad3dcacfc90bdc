// Package pipeline runs a single file through the normalization stages:
// read → normalize → write.
package pipeline

import (
	"fmt"

	"github.com/gaurav-prasanna/unorm/core"
	"github.com/gaurav-prasanna/unorm/logger"
)

// Result describes a completed run.
type Result struct {
	Input        string
	Output       string
	Form         core.Form
	BytesRead    int
	BytesWritten int
}

// Pipeline wires the three stages together.
type Pipeline struct {
	reader     core.Reader
	normalizer core.Normalizer
	writer     core.Writer
	log        logger.Logger
}

// New creates a Pipeline. A nil log discards all messages.
func New(reader core.Reader, normalizer core.Normalizer, writer core.Writer, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Discard()
	}
	return &Pipeline{reader: reader, normalizer: normalizer, writer: writer, log: log}
}

// Run normalizes the file at inputPath into outputPath using the named form.
// The form is validated before the filesystem is touched, and nothing is
// written unless reading and normalizing both succeed.
func (p *Pipeline) Run(inputPath, outputPath, formName string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &core.Error{Kind: core.Unexpected, Op: "normalize", Path: inputPath, Message: fmt.Sprintf("panic: %v", r)}
		}
	}()

	// 1. Validate form
	form, err := core.ParseForm(formName)
	if err != nil {
		return nil, err
	}
	log := p.log.With("form", form.String())

	// 2. Read input
	log.Debug("Reading input", "input", inputPath)
	text, err := p.reader.Read(inputPath)
	if err != nil {
		return nil, err
	}

	// 3. Normalize
	normalized, err := p.normalizer.Normalize(text, form)
	if err != nil {
		return nil, err
	}

	// 4. Write output
	log.Debug("Writing output", "output", outputPath, "bytes", len(normalized))
	if err := p.writer.Write(outputPath, normalized); err != nil {
		return nil, err
	}

	log.Info("Successfully normalized file", "input", inputPath, "output", outputPath)
	return &Result{
		Input:        inputPath,
		Output:       outputPath,
		Form:         form,
		BytesRead:    len(text),
		BytesWritten: len(normalized),
	}, nil
}
