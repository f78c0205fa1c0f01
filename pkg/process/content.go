package process

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/md-toc/pkg/config"
	"github.com/Sriram-PR/md-toc/pkg/toc"
	"github.com/Sriram-PR/md-toc/pkg/utils"
)

// ContentProcessor runs the TOC pipeline over one document's text and
// applies the configured newline format to the result
type ContentProcessor struct {
	opts     toc.Options
	newlines string
	log      *logrus.Entry
}

// NewContentProcessor validates opts and resolves the newline format once so
// that every document in a run uses the same settings
func NewContentProcessor(opts toc.Options, newlines string, log *logrus.Entry) (*ContentProcessor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format, err := config.ResolveNewlines(newlines)
	if err != nil {
		return nil, err
	}
	return &ContentProcessor{
		opts:     opts,
		newlines: format,
		log:      log.WithField("component", "processor"),
	}, nil
}

// Options returns the generation options in effect
func (cp *ContentProcessor) Options() toc.Options {
	return cp.opts
}

// Fingerprint identifies the settings that shape the output, so cached
// results from other settings are never reused
func (cp *ContentProcessor) Fingerprint() string {
	return utils.CalculateStringSHA256(fmt.Sprintf("%#v|%s", cp.opts, cp.newlines))
}

// ProcessText returns the document with an up-to-date TOC. name only labels
// errors and log lines.
func (cp *ContentProcessor) ProcessText(name, input string) (string, error) {
	taskLog := cp.log.WithField("file", name)
	taskLog.Debugf("Generating TOC (%d bytes)", len(input))

	output, err := toc.Generate(input, cp.opts)
	if err != nil {
		taskLog.WithField("error_type", utils.CategorizeError(err)).Debugf("Generation failed: %v", err)
		return "", fmt.Errorf("%s: %w", name, err)
	}
	output = config.ConvertNewlines(output, cp.newlines)

	if output == input {
		taskLog.Debug("TOC already up to date")
	}
	return output, nil
}

// Outline returns the filtered outline of the document
func (cp *ContentProcessor) Outline(name, input string) ([]*toc.OutlineNode, error) {
	forest, err := toc.Outline(input, cp.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return forest, nil
}
