package answer

import (
	"fmt"
	"strings"
)

// StrictRefusal is the exact sentence the strict variant must use when the
// context does not contain the answer. Clients match on it verbatim.
const StrictRefusal = "I am sorry, I cannot find that information in the provided documents."

const rewriteInstruction = `Given a chat history and the latest user question which might reference context in the chat history, formulate a standalone question which can be understood without the chat history. Do NOT answer the question, just reformulate it if needed and otherwise return it as is.`

const defaultAnswerTemplate = `You are an assistant for question-answering tasks. Use the following pieces of retrieved context to answer the question. If you don't know the answer, just say that you don't know. Keep the answer concise.

Context:
%s`

const strictAnswerTemplate = `You are an assistant for question-answering tasks. Answer ONLY from the pieces of retrieved context below. If the context does not contain the answer, reply exactly: "` + StrictRefusal + `" Do not use any outside knowledge.

Context:
%s`

const suggestionTemplate = `Below are excerpts from a document collection. Propose %d short starter questions a reader could ask about it. Reply with one question per line and nothing else.

Excerpts:
%s`

func groundedInstruction(variant PromptVariant, contextChunks []string) string {
	contextText := strings.Join(contextChunks, "\n\n")
	if variant == VariantStrict {
		return fmt.Sprintf(strictAnswerTemplate, contextText)
	}
	return fmt.Sprintf(defaultAnswerTemplate, contextText)
}

func suggestionPrompt(n int, samples []string) string {
	return fmt.Sprintf(suggestionTemplate, n, strings.Join(samples, "\n---\n"))
}
