// Package tokenize splits subtitle text into display tokens. Japanese
// text can go through a MeCab subprocess for morpheme boundaries and
// readings; everything else splits on whitespace.
package tokenize
