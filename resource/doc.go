// Package resource limits the memory and IO bandwidth that attribute codecs
// consume. One Controller may be shared by many codecs in a process.
package resource
