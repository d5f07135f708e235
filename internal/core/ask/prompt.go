package ask

import "fmt"

// SystemInstruction は回答生成時に必ず与えるシステム指示。
// 提供ソースのみで回答する・ソースになければ分からないと答える・
// [1], [2] 形式でソースを引用する、という3点を固定で指示する。
const SystemInstruction = "You answer using ONLY the provided sources. " +
	"If the answer is not in the sources, say you don't know. " +
	"Cite sources like [1], [2]."

// BuildUserContent は質問文とコンテキストからユーザーメッセージを組み立てる
func BuildUserContent(question, sourcesContext string) string {
	return fmt.Sprintf("Question: %s\n\nSources:\n%s", question, sourcesContext)
}
