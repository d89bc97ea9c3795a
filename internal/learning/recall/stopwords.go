package recall

// stopWords is the Vietnamese + English function-word list excluded from blanking.
var stopWords = toSet([]string{
	"là", "và", "của", "có", "trong", "để", "một", "không", "được", "cho", "với", "tại",
	"thì", "mà", "khi", "từ", "ra", "lên", "xuống", "vào", "qua", "đến", "đi", "lại",
	"như", "ở", "đã", "sẽ", "đang", "rằng", "hay", "hơn", "rất", "này", "đó", "kia", "ấy",
	"tôi", "bạn", "anh", "chị", "em", "ông", "bà", "nó", "chúng", "mình",
	"the", "a", "an", "is", "are", "was", "were", "of", "in", "on", "at", "to", "for",
	"with", "by", "from", "as", "and", "or", "but", "if", "then", "this", "that", "it",
	"its", "i", "you", "he", "she", "we", "they", "my", "your", "his", "her", "our", "their",
})

func toSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// IsStopWord reports whether the lower-cased word is ignored as a keyword.
func IsStopWord(lower string) bool {
	_, ok := stopWords[lower]
	return ok
}
