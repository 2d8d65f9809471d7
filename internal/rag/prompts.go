package rag

import "fmt"

// relevancePrompt asks the backend for a binary verdict. Temperature is
// pinned to 0 by the caller so the verdict is deterministic.
func relevancePrompt(contextText, question string) string {
	return fmt.Sprintf(`
Is the following question relevant to the context below? Answer only YES or NO.

Context:
%s

Question:
%s
`, contextText, question)
}

// answerPrompt grounds the answer in retrieved context and instructs the
// model to say "I don't know." when the context does not contain the answer.
func answerPrompt(contextText, question string) string {
	return fmt.Sprintf(`Context information is below.
---------------------
%s
---------------------
Given the context information, please answer the following question. If you cannot find the answer in the context, say "I don't know."

Question: %s`, contextText, question)
}
