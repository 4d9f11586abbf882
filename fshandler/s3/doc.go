// Package s3 provides a filesystem handler backed by Amazon S3.
//
// A segment directory maps to a key prefix: the handler for directory
// "segments/42" reads and writes keys "segments/42/<file>". S3 has no real
// directories, so a segment directory exists once at least one object
// lives under its prefix.
//
// # Basic Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h := s3.New(awss3.NewFromConfig(cfg), "my-bucket", "segments/42")
//	attrs, err := codec.ReadAll(ctx, h)
//
// Reads issue one ranged GET per Read call, so the codec's header read and
// payload read each cost a single request. Writes are buffered in memory and
// uploaded with the multipart upload manager on Close.
package s3
