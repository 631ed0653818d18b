package layout

import (
	"strings"
	"unicode"
)

// shortWordLimit 以内的单词不拆行。
const shortWordLimit = 10

// vowelWindow 是在中点左右各搜索的字符数。
const vowelWindow = 2

// Split 将标签拆成最多两行。
//
// 多个单词时按单词数的中点拆分（奇数时前一行少一个词）；单个长单词时在中点
// 附近的第一个元音之后断开，找不到元音则直接在中点断开。长度与下标均按 rune 计算。
func Split(label string) LineSplit {
	words := strings.Fields(label)
	if len(words) >= 2 {
		mid := len(words) / 2
		return LineSplit{
			Line1: strings.Join(words[:mid], " "),
			Line2: strings.Join(words[mid:], " "),
		}
	}

	runes := []rune(label)
	if len(runes) <= shortWordLimit {
		return LineSplit{Line1: label}
	}

	cut := len(runes) / 2
	for i := cut - vowelWindow; i <= cut+vowelWindow; i++ {
		if i >= 0 && i < len(runes) && isVowel(runes[i]) {
			cut = i + 1
			break
		}
	}
	return LineSplit{
		Line1: string(runes[:cut]),
		Line2: string(runes[cut:]),
	}
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", unicode.ToLower(r))
}
