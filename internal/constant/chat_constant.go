package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// NoDocumentsReply is the verbatim answer for sessions without an index.
	NoDocumentsReply = "Please upload a document to this session first."

	ComposeAnswerPrompt = `You are a document assistant. Answer the question using only the provided context.

Context:
%s

Question: %s

Answer clearly and concisely. If the context does not contain the answer, say so.`

	ComposeContextualPrompt = `You are a document assistant. Answer the question using the document context and the conversation so far.

Conversation history:
%s

Document context:
%s

Question: %s

Answer clearly and concisely, staying consistent with the conversation. If the context does not contain the answer, say so.`

	ParaphrasePrompt = `Rewrite the following question in %d different ways that preserve its meaning.
Return one rewrite per line with no numbering or extra text.

Question: %s`

	ComposeBlendedPrompt = `You are a document assistant with access to live internet search results.

Internet search results:
%s

Answer derived from the user's documents:
%s

Question: %s

Compose a single final answer that combines both sources. Prefer document-grounded facts; use the internet results for current information the documents lack.`

	ComposeInternetFirstPrompt = `You are an assistant with access to live internet search results.

Internet search results:
%s

Additional context from the user's documents:
%s

Question: %s

Answer primarily from the internet search results, using the document context only as supporting background.`
)
