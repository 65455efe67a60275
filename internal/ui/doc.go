// Package ui implements the console confirmations dsanno asks for before
// replacing files that already exist.
package ui
