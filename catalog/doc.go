// Package catalog holds the fixed list of languages the translator accepts,
// keyed by translator code ("en", "hi", "zh-Hans"). A default list is built
// in; a JSON file of the same shape replaces it:
//
//	{"en": {"name": "English", "nativeName": "English", "dir": "ltr"}}
package catalog
