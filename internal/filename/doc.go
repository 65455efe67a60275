// Package filename implements the derivative filename convention.
//
// # Overview
//
// Every derivative file in a dataset is named from its identity keys:
//
//	source-HCP_desc-thickness_space-fsLR_den-32k_hemi-L_feature.shape.gii
//	source-HCP_desc-thickness_space-fsLR_res-2mm_feature.nii.gz
//
// Segments are joined with '_', each segment is "key-value", the stem ends with
// the sentinel segment "feature", and the extension selects the format
// (GIFTI shape for surfaces, compressed NIfTI for volumes).
//
// # Usage
//
//	codec := filename.NewCodec(schema.Default())
//	name := codec.Encode(record, dsanno.FormatSurface)
//
//	decoded, err := codec.Decode(name)
//	if errors.Is(err, dsanno.ErrMalformedFilename) {
//	    // not a derivative file
//	}
//
// Encoding then decoding recovers the identity keys of the format exactly,
// provided no value contains a separator character.
package filename
