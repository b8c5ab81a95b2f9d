// Package models defines the pool feature's database model and API shapes.
package models
