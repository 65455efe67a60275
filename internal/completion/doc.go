// Package completion fills in the derived keys of an annotation record.
//
// Given a partial record, Engine.Complete:
//  1. Classifies it as a surface or volume map
//  2. Encodes the canonical filename (fname)
//  3. Computes the relative directory (rel_path)
//  4. Digests the file when it exists under the dataset root (checksum)
//  5. Drops keys that do not apply to the format
//  6. Projects the result onto the minimal schema keys
//
// Complete never mutates its input and is idempotent. Classification and
// digest failures are reported per record as *RecordError; CompleteAll keeps
// going past them and returns every record at its original index.
package completion
