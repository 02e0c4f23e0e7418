package usecase

import "fmt"

// analysisPromptTemplate mandates the two-section response format the parser
// is built around: an ANALYSIS narrative and pipe-delimited PRODUCT lines.
// The catalog block is embedded so the model recommends real products.
const analysisPromptTemplate = `You are an expert dermatologist and hair care specialist for an Indian cosmetics brand named Bio Valley. Analyze this image of a person's skin or scalp.

Provide your response in TWO clear sections:

1. ANALYSIS: A brief, empathetic, 2-3 sentence analysis of what you observe (e.g., dryness, oiliness, dandruff, dullness).
2. RECOMMENDATIONS: Based on your analysis, recommend EXACTLY 3 products from this Bio Valley catalog that form a complete routine.

CRITICAL: You MUST format your recommendations exactly like this, with a pipe symbol '|' separating the fields:
PRODUCT: [Name] - [Short Description] | [URL] | [Price]

Catalog:
%s`

// BuildAnalysisPrompt assembles the model instruction for one analysis
// request. The catalog block is an explicit parameter so the assembler stays
// free of shared state.
func BuildAnalysisPrompt(catalogBlock string) string {
	return fmt.Sprintf(analysisPromptTemplate, catalogBlock)
}
