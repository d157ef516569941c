package service

import (
	"fmt"
	"strings"

	"github.com/askcse/deptbot-be/types"
)

// BuildRAGPrompt assembles the generation prompt: context passages ordered
// by relevance, separated by dividers, followed by strict grounding
// instructions. Department names the unit the assistant answers for.
func BuildRAGPrompt(department, query string, contextDocs []types.ScoredResult) string {
	context := "No specific context provided."
	if len(contextDocs) > 0 {
		parts := make([]string, len(contextDocs))
		for i, doc := range contextDocs {
			relevance := ""
			if doc.FinalScore > 0 {
				relevance = fmt.Sprintf(" [Relevance: %.2f]", doc.FinalScore)
			}
			parts[i] = fmt.Sprintf("Context %d%s:\n%s", i+1, relevance, doc.Content)
		}
		context = strings.Join(parts, "\n\n---\n\n")
	}

	var sb strings.Builder
	sb.WriteString("You are an intelligent assistant for the ")
	sb.WriteString(department)
	sb.WriteString(".\n\nCONTEXT INFORMATION (ordered by relevance):\n")
	sb.WriteString(context)
	sb.WriteString("\n\nUSER QUESTION: ")
	sb.WriteString(query)
	sb.WriteString(`

CRITICAL INSTRUCTIONS:
1. Answer ONLY based on the context provided above
2. If the context doesn't contain enough information, respond: "I don't have sufficient information in my knowledge base to answer that question accurately."
3. Be specific and precise - mention exact names, numbers, specializations, course codes when available
4. Structure your answer clearly with proper paragraphs
5. If multiple relevant facts exist, synthesize them into a coherent response
6. DO NOT make assumptions or add information not present in the context
7. If asked about specific people, courses, or details, cite them accurately from context

RESPONSE FORMAT:
- Start directly with the answer (no "Based on the context..." preambles)
- Use natural, conversational language
- Be concise but complete
- End with relevant additional details if available

YOUR ANSWER:`)
	return sb.String()
}
