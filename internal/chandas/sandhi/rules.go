package sandhi

// vowelRule reverses one fused-vowel junction. The junction rune is a
// dependent sign produced by external sandhi; reversal removes it, closes
// the left fragment with tail and opens the remainder with head. Rules
// are tried in declaration order and the first valid split wins, so the
// table order is part of the segmenter contract.
type vowelRule struct {
	junction rune
	prev     rune // required consonant before the junction, 0 matches any
	tail     string
	head     string
}

// The halanta-restoring rules are pinned to a preceding म: word-final m
// is the one stop that routinely fuses with a following long vowel in
// samhita writing, and without the pin genuine long vowels inside words
// such as नमस्कृत्य or जगतीषु would be torn apart.
var vowelRules = []vowelRule{
	{junction: 'ी', prev: 'म', tail: "्", head: "ई"}, // agnim īḷe written अग्निमीळे
	{junction: 'ू', prev: 'म', tail: "्", head: "ऊ"},
	{junction: 'ृ', prev: 'म', tail: "्", head: "ऋ"}, // devam ṛtvijam written देवमृत्विजम्
	{junction: 'ो', tail: "ः", head: ""},             // visarga sandhi before a voiced onset
}

// avagrahaRule reverses an avagraha junction. The avagraha itself always
// marks an elided initial a; what varies is how the left fragment closed.
type avagrahaRule struct {
	leftSuffix string // required tail of the left fragment, empty matches any
	trimSuffix string // removed from the left fragment before tail is added
	tail       string
	head       string
}

var avagrahaRules = []avagrahaRule{
	{leftSuffix: "ो", trimSuffix: "ो", tail: "ः", head: "अ"}, // saḥ ayam → so 'yam
	{leftSuffix: "े", tail: "", head: "अ"},                   // te api → te 'pi
	{leftSuffix: "", tail: "", head: "अ"},
}
