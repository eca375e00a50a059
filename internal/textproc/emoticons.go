package textproc

// emoticonGloss is one emoticon substring and its word gloss.
type emoticonGloss struct {
	pattern string
	gloss   string
}

// emoticonTable is applied by sequential substring replacement, in this
// order. Some patterns are substrings of others (" :-((" vs " :-("), so
// the declaration order is part of the contract. Replacement happens
// after lowercasing, so glosses must be lowercase already.
var emoticonTable = []emoticonGloss{
	{" :)", "happy"},
	{" :(", "sad"},
	{" :D", "very happy"},
	{" :|", "neutral"},
	{" :O", "surprised"},
	{" <3", "love"},
	{" ;)", "wink"},
	{" :P", "playful"},
	{" :/", "confused"},
	{" :*", "kiss"},
	{" :')", "touched"},
	{" XD", "laughing"},
	{" :3", "cute"},
	{" >:(", "angry"},
	{" :-O", "shocked"},
	{" :|]", "robot"},
	{" :>", "sly"},
	{" ^_^", "happy"},
	{" O_o", "confused"},
	{" :-|", "straight face"},
	{" :X", "silent"},
	{" B-)", "cool"},
	{" <(‘.'<)", "dance"},
	{" (-_-)", "bored"},
	{" (>_<)", "upset"},
	{" (¬‿¬)", "sarcastic"},
	{" (o_o)", "surprised"},
	{" (o.O)", "shocked"},
	{" :0", "shocked"},
	{" :*(", "crying"},
	{" :v ", "pac-man"},
	{" (^_^)v ", "double victory"},
	{" :-D", "big grin"},
	{" :-*", "blowing a kiss"},
	{" :^)", "nosey"},
	{" :-((", "very sad"},
	{" :-(", "frowning"},
}
