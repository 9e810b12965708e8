package dictionary

import "fmt"

// Node is one prefix in the Trie. Children are indexed by letter - 'a'.
type Node struct {
	children [26]*Node
	kids     uint8
	word     bool
}

// Child returns the node for prefix+letter, or nil when no word continues that way.
func (n *Node) Child(letter byte) *Node {
	if n == nil || letter < 'a' || letter > 'z' {
		return nil
	}
	return n.children[letter-'a']
}

// IsWord reports whether the path to n spells a vocabulary word.
func (n *Node) IsWord() bool {
	return n != nil && n.word
}

// HasChildren reports whether some longer word shares this prefix.
func (n *Node) HasChildren() bool {
	return n != nil && n.kids > 0
}

// Trie is a 26-ary prefix tree over lowercase ASCII words.
// It is not safe for concurrent writes; once loading is done it may be read
// from any number of goroutines.
type Trie struct {
	root  *Node
	words int
}

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: &Node{}}
}

// Root returns the node of the empty prefix.
func (t *Trie) Root() *Node {
	return t.root
}

// AddWord inserts word. The word is validated before any node is created,
// so a rejected word leaves the trie unchanged.
func (t *Trie) AddWord(word string) error {
	if err := validate(word); err != nil {
		return err
	}

	node := t.root
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'a'
		next := node.children[idx]
		if next == nil {
			next = &Node{}
			node.children[idx] = next
			node.kids++
		}
		node = next
	}
	if !node.word {
		node.word = true
		t.words++
	}
	return nil
}

// IsWord reports whether s is a vocabulary word.
func (t *Trie) IsWord(s string) bool {
	return t.find(s).IsWord()
}

// CanContinue reports whether some word strictly longer than s starts with s.
// A complete word with no extensions returns false.
func (t *Trie) CanContinue(s string) bool {
	return t.find(s).HasChildren()
}

// Len returns the number of distinct words stored.
func (t *Trie) Len() int {
	return t.words
}

// Complete returns up to limit words that start with prefix, in lexical order.
// A limit of 0 or less returns every match.
func (t *Trie) Complete(prefix string, limit int) []string {
	node := t.find(prefix)
	if node == nil {
		return []string{}
	}

	results := []string{}
	buf := []byte(prefix)
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		if n.word {
			results = append(results, string(buf))
			if limit > 0 && len(results) >= limit {
				return false
			}
		}
		for i, child := range n.children {
			if child == nil {
				continue
			}
			buf = append(buf, byte('a'+i))
			more := walk(child)
			buf = buf[:len(buf)-1]
			if !more {
				return false
			}
		}
		return true
	}
	walk(node)
	return results
}

func (t *Trie) find(s string) *Node {
	node := t.root
	for i := 0; i < len(s) && node != nil; i++ {
		node = node.Child(s[i])
	}
	return node
}

func validate(word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	for i := 0; i < len(word); i++ {
		if ch := word[i]; ch < 'a' || ch > 'z' {
			return fmt.Errorf("%w: %q in %q", ErrInvalidCharacter, ch, word)
		}
	}
	return nil
}
