package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks docchat/internal/rag Engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"docchat/internal/contextutil"
	"docchat/internal/llm"
	"docchat/internal/vectorstore"
)

// Retrieval depth per task. Summaries and classifications need broader
// context than a pointed question.
const (
	answerK   = 5
	summaryK  = 8
	compareK  = 6
	classifyK = 10
	analysisK = 8
)

// Engine exposes the user-facing document tasks. Every method returns a
// renderable Result; lower-layer failures are converted into marker-prefixed
// messages at this boundary and never propagate as errors.
type Engine interface {
	// Answer answers a question over the indexed documents, citing sources.
	Answer(ctx context.Context, question string) Result

	// Summarize writes an executive summary of one document.
	Summarize(ctx context.Context, docName string) Result

	// Compare contrasts two distinct documents.
	Compare(ctx context.Context, docA, docB string) Result

	// Classify builds a topic taxonomy for a query over the indexed documents.
	Classify(ctx context.Context, query string) Result

	// Analyze profiles a single document: type, purpose, key entities.
	Analyze(ctx context.Context, docName string) Result

	// Overview aggregates per-document page and fragment counts from stored
	// metadata without running a similarity search.
	Overview(ctx context.Context) Result
}

type ragEngine struct {
	assembler  *Assembler
	generator  Generator
	store      vectorstore.VectorStore
	collection string
}

// NewEngine creates the task orchestrator.
func NewEngine(assembler *Assembler, generator Generator, store vectorstore.VectorStore, collection string) Engine {
	return &ragEngine{
		assembler:  assembler,
		generator:  generator,
		store:      store,
		collection: collection,
	}
}

func (e *ragEngine) Answer(ctx context.Context, question string) Result {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(question) == "" {
		return validationResult(msgEmptyQuestion)
	}

	assembly, err := e.assembler.Assemble(ctx, question, answerK)
	if err != nil {
		logger.ErrorContext(ctx, "context assembly failed", "error", err)
		return retrievalFailure(err)
	}
	switch assembly.Status {
	case StatusNotIndexed:
		return notIndexedResult()
	case StatusNoMatch:
		return Result{Kind: KindNoMatch, Text: msgNoMatch}
	}

	answer, genResult := e.generate(ctx, buildQAPrompt(question, assembly.Context))
	if genResult != nil {
		return *genResult
	}

	if len(assembly.Citations) > 0 {
		answer += "\n\n**📚 Sources:** " + strings.Join(assembly.Citations, " ")
	}
	return Result{Kind: KindOK, Text: answer, Citations: assembly.Citations}
}

func (e *ragEngine) Summarize(ctx context.Context, docName string) Result {
	logger := contextutil.LoggerFromContext(ctx)

	docName = strings.TrimSpace(docName)
	if docName == "" {
		return validationResult(msgEmptyDocName)
	}

	// Retrieval is topic-driven, not document-scoped: the synthesized query
	// steers search toward the named document but cannot fence out fragments
	// from other documents with overlapping topics.
	query := fmt.Sprintf("main topics of document %s", docName)
	assembly, err := e.assembler.Assemble(ctx, query, summaryK)
	if err != nil {
		logger.ErrorContext(ctx, "context assembly failed", "doc", docName, "error", err)
		return retrievalFailure(err)
	}
	switch assembly.Status {
	case StatusNotIndexed:
		return notIndexedResult()
	case StatusNoMatch:
		return noDocInfoResult(docName)
	}

	summary, genResult := e.generate(ctx, buildSummaryPrompt(docName, assembly.Context))
	if genResult != nil {
		return *genResult
	}
	return Result{Kind: KindOK, Text: fmt.Sprintf("**📋 Summary of %s**\n\n%s", docName, summary)}
}

func (e *ragEngine) Compare(ctx context.Context, docA, docB string) Result {
	logger := contextutil.LoggerFromContext(ctx)

	docA = strings.TrimSpace(docA)
	docB = strings.TrimSpace(docB)
	if docA == "" || docB == "" {
		return validationResult(msgEmptyCompare)
	}
	if docA == docB {
		return validationResult(msgSameDocCompare)
	}

	assemblyA, err := e.assembler.Assemble(ctx, fmt.Sprintf("key topics of %s", docA), compareK)
	if err != nil {
		logger.ErrorContext(ctx, "context assembly failed", "doc", docA, "error", err)
		return retrievalFailure(err)
	}
	if assemblyA.Status == StatusNotIndexed {
		return notIndexedResult()
	}
	if assemblyA.Status == StatusNoMatch {
		return noDocInfoResult(docA)
	}

	assemblyB, err := e.assembler.Assemble(ctx, fmt.Sprintf("key topics of %s", docB), compareK)
	if err != nil {
		logger.ErrorContext(ctx, "context assembly failed", "doc", docB, "error", err)
		return retrievalFailure(err)
	}
	if assemblyB.Status == StatusNotIndexed {
		return notIndexedResult()
	}
	if assemblyB.Status == StatusNoMatch {
		return noDocInfoResult(docB)
	}

	comparison, genResult := e.generate(ctx, buildComparisonPrompt(docA, docB, assemblyA.Context, assemblyB.Context))
	if genResult != nil {
		return *genResult
	}
	return Result{Kind: KindOK, Text: fmt.Sprintf("**⚖️ Comparison: %s vs %s**\n\n%s", docA, docB, comparison)}
}

func (e *ragEngine) Classify(ctx context.Context, query string) Result {
	logger := contextutil.LoggerFromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return validationResult(msgEmptyTopic)
	}

	assembly, err := e.assembler.Assemble(ctx, query, classifyK)
	if err != nil {
		logger.ErrorContext(ctx, "context assembly failed", "query", query, "error", err)
		return retrievalFailure(err)
	}
	switch assembly.Status {
	case StatusNotIndexed:
		return notIndexedResult()
	case StatusNoMatch:
		return Result{Kind: KindNoMatch, Text: msgNoMatchQuery}
	}

	classification, genResult := e.generate(ctx, buildClassificationPrompt(query, assembly.Context))
	if genResult != nil {
		return *genResult
	}
	return Result{
		Kind: KindOK,
		Text: fmt.Sprintf("**🏷️ Topic Classification**\n\n**Query:** %s\n\n%s", query, classification),
	}
}

func (e *ragEngine) Analyze(ctx context.Context, docName string) Result {
	logger := contextutil.LoggerFromContext(ctx)

	docName = strings.TrimSpace(docName)
	if docName == "" {
		return validationResult(msgEmptyAnalyze)
	}

	query := fmt.Sprintf("purpose and key contents of document %s", docName)
	assembly, err := e.assembler.Assemble(ctx, query, analysisK)
	if err != nil {
		logger.ErrorContext(ctx, "context assembly failed", "doc", docName, "error", err)
		return retrievalFailure(err)
	}
	switch assembly.Status {
	case StatusNotIndexed:
		return notIndexedResult()
	case StatusNoMatch:
		return noDocInfoResult(docName)
	}

	analysis, genResult := e.generate(ctx, buildAnalysisPrompt(docName, assembly.Context))
	if genResult != nil {
		return *genResult
	}
	return Result{Kind: KindOK, Text: fmt.Sprintf("**🔍 Analysis of %s**\n\n%s", docName, analysis)}
}

func (e *ragEngine) Overview(ctx context.Context) Result {
	logger := contextutil.LoggerFromContext(ctx)

	if !e.assembler.Ready(ctx) {
		return notIndexedResult()
	}

	metas, err := e.store.ScrollMeta(ctx, e.collection)
	if err != nil {
		logger.ErrorContext(ctx, "failed to scan stored metadata", "error", err)
		return retrievalFailure(err)
	}

	type docStats struct {
		pages     map[string]bool
		fragments int
	}
	stats := make(map[string]*docStats)
	for _, meta := range metas {
		name, _ := meta["document_name"].(string)
		if name == "" {
			continue
		}
		s, ok := stats[name]
		if !ok {
			s = &docStats{pages: make(map[string]bool)}
			stats[name] = s
		}
		s.pages[pageLabel(meta)] = true
		s.fragments++
	}
	if len(stats) == 0 {
		return notIndexedResult()
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("**📊 Document Overview**\n\n")
	fmt.Fprintf(&b, "**Total fragments:** %d\n", len(metas))
	fmt.Fprintf(&b, "**Indexed documents:** %d\n\n", len(names))
	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(&b, "• **%s**: %d pages, %d fragments\n", name, len(s.pages), s.fragments)
	}
	return Result{Kind: KindOK, Text: b.String()}
}

// generate invokes the model and converts failures into user-facing results.
// The second return value is non-nil when the caller should return it as-is.
func (e *ragEngine) generate(ctx context.Context, prompt string) (string, *Result) {
	logger := contextutil.LoggerFromContext(ctx)

	text, err := e.generator.Generate(ctx, prompt)
	if err == nil {
		return text, nil
	}

	logger.ErrorContext(ctx, "generation failed", "error", err)
	if errors.Is(err, llm.ErrMissingCredential) {
		return "", &Result{
			Kind: KindConfigError,
			Text: failurePrefix + "Configuration error: " + err.Error(),
		}
	}
	return "", &Result{
		Kind: KindGenerateFailed,
		Text: failurePrefix + "Error generating response: " + err.Error(),
	}
}

func retrievalFailure(err error) Result {
	return Result{
		Kind: KindInternal,
		Text: failurePrefix + "Unexpected error: " + err.Error(),
	}
}
