// Package tui fills a form from the terminal. A Filler walks the form's
// elements and prompts through a PromptDriver, backed by survey by default,
// writing each answer through the element setters so bound models follow.
package tui
