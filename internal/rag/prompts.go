package rag

import (
	"strings"
	"text/template"
)

// systemPrompt is prepended to every question-answering prompt.
const systemPrompt = `You are a conversational copilot specialized in document analysis.
- Answer ONLY with information supported by the provided fragments.
- Cite your sources at the end using the format [document p.page].
- If the fragments do not contain enough support, say clearly that the documents do not hold sufficient information.
- Be concise, structured, and professional.
- Use Markdown formatting to improve readability.`

var (
	qaTemplate = template.Must(template.New("qa").Parse(`User question:
{{.Question}}

Relevant context (document fragments):
{{.Context}}

Instructions:
- Synthesize the answer using only the provided context.
- If multiple documents are involved, briefly integrate and compare their information.
- Return a bullet list if the answer is long.
- Keep a professional, objective tone.

Answer:`))

	summaryTemplate = template.Must(template.New("summary").Parse(`Write an executive summary of the document: {{.DocName}}

Instructions:
- Identify the main topics and key points
- Highlight important findings and conclusions
- Use short bullets (at most 7 points)
- End with 2-3 identified risks or limitations
- Keep a professional executive format

Summary:`))

	comparisonTemplate = template.Must(template.New("comparison").Parse(`Compare the documents: {{.DocA}} vs {{.DocB}}

Instructions:
- Analyze the key objectives of each document
- Identify the main findings and conclusions
- Evaluate assumptions and risks
- Highlight significant overlaps and differences
- End with a two-line comparative synthesis

Comparison:`))

	classificationTemplate = template.Must(template.New("classification").Parse(`Classify the topics related to the query: {{.Query}}

Instructions:
- Identify and categorize the main themes
- Group related concepts
- Assign a priority or relevance to each topic
- Suggest possible subtopics or research areas
- Provide a hierarchical structure of themes

Topic classification:`))

	analysisTemplate = template.Must(template.New("analysis").Parse(`Analyze the document: {{.DocName}}

Instructions:
- Identify the document type and its purpose
- Extract key information: dates, entities, metrics
- Identify the target audience
- Highlight the main findings
- Suggest relevant follow-up questions

Analysis:`))
)

func renderTemplate(tmpl *template.Template, data any) string {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		// Templates are static and data is a struct literal; a failure here is
		// a programming error.
		panic(err)
	}
	return b.String()
}

func buildQAPrompt(question, context string) string {
	body := renderTemplate(qaTemplate, struct{ Question, Context string }{question, context})
	return systemPrompt + "\n\n" + body
}

func buildSummaryPrompt(docName, context string) string {
	body := renderTemplate(summaryTemplate, struct{ DocName string }{docName})
	return body + "\n\nContext:\n" + context + "\n"
}

func buildComparisonPrompt(docA, docB, contextA, contextB string) string {
	body := renderTemplate(comparisonTemplate, struct{ DocA, DocB string }{docA, docB})
	return body + "\n\nContext " + docA + ":\n" + contextA + "\n\nContext " + docB + ":\n" + contextB + "\n"
}

func buildClassificationPrompt(query, context string) string {
	body := renderTemplate(classificationTemplate, struct{ Query string }{query})
	return body + "\n\nContext:\n" + context + "\n"
}

func buildAnalysisPrompt(docName, context string) string {
	body := renderTemplate(analysisTemplate, struct{ DocName string }{docName})
	return body + "\n\nContext:\n" + context + "\n"
}
