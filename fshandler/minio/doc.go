// Package minio provides a filesystem handler using the MinIO client.
//
// MinIO is a high-performance, S3-compatible object storage system. This
// handler works with MinIO and other S3-compatible stores such as Ceph,
// SeaweedFS and Garage, without any AWS dependency.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	h := miniohandler.New(client, "my-bucket", "segments/42")
//	attrs, err := codec.ReadAll(ctx, h)
//
// A segment directory exists once at least one object lives under its
// prefix. Writes are buffered and uploaded with a single PutObject on Close.
package minio
