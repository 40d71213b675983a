package rag

import (
	"context"
	"fmt"
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Status describes the outcome of a retrieval attempt.
type Status int

const (
	// StatusReady means fragments were retrieved and context assembled.
	StatusReady Status = iota
	// StatusNotIndexed means the collection is empty or unreadable.
	StatusNotIndexed
	// StatusNoMatch means the collection has entries but none matched the query.
	StatusNoMatch
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusNotIndexed:
		return "not_indexed"
	case StatusNoMatch:
		return "no_match"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Assembly is the result of assembling retrieval context for a query.
// Context and Citations are only populated when Status is StatusReady.
type Assembly struct {
	Status    Status
	Context   string
	Citations []string
}

// ResultKind classifies an orchestrator outcome so callers can branch on
// structure instead of inspecting the text.
type ResultKind int

const (
	// KindOK is a successful generation.
	KindOK ResultKind = iota
	// KindNotIndexed means no documents have been ingested yet.
	KindNotIndexed
	// KindNoMatch means retrieval found nothing relevant.
	KindNoMatch
	// KindValidation means the request was malformed.
	KindValidation
	// KindConfigError means the generation credential is missing.
	KindConfigError
	// KindGenerateFailed means the generation capability failed after all
	// request shapes were exhausted.
	KindGenerateFailed
	// KindInternal covers unexpected retrieval-side failures.
	KindInternal
)

func (k ResultKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotIndexed:
		return "not_indexed"
	case KindNoMatch:
		return "no_match"
	case KindValidation:
		return "validation"
	case KindConfigError:
		return "config_error"
	case KindGenerateFailed:
		return "generate_failed"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Result is the user-facing outcome of an orchestrator call. Text is always
// renderable Markdown; failure kinds carry a marker prefix so the presentation
// layer can display every outcome uniformly.
type Result struct {
	Kind      ResultKind `json:"kind"`
	Text      string     `json:"text"`
	Citations []string   `json:"citations,omitempty"`
}

// OK reports whether the result is a successful generation.
func (r Result) OK() bool {
	return r.Kind == KindOK
}

// failurePrefix marks every failure message so the presentation layer can
// render failures without inspecting result kinds.
const failurePrefix = "❌ "

const (
	msgNotIndexed     = failurePrefix + "No documents indexed. Please upload and process some PDFs first."
	msgNoMatch        = failurePrefix + "No relevant information found for your question."
	msgNoMatchQuery   = failurePrefix + "No relevant information found for the query."
	msgEmptyQuestion  = failurePrefix + "Please enter a valid question."
	msgEmptyDocName   = failurePrefix + "Please specify the name of the document to summarize."
	msgEmptyAnalyze   = failurePrefix + "Please specify the name of the document to analyze."
	msgEmptyCompare   = failurePrefix + "Please specify both documents to compare."
	msgSameDocCompare = failurePrefix + "You cannot compare a document with itself."
	msgEmptyTopic     = failurePrefix + "Please specify a query for the topic classification."
)

func notIndexedResult() Result {
	return Result{Kind: KindNotIndexed, Text: msgNotIndexed}
}

func validationResult(msg string) Result {
	return Result{Kind: KindValidation, Text: msg}
}

func noDocInfoResult(name string) Result {
	return Result{
		Kind: KindNoMatch,
		Text: fmt.Sprintf("%sNo information found for document %q.", failurePrefix, name),
	}
}
