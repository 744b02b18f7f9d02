// Package archive unpacks server build archives. Linux server builds
// ship as tar.gz and Windows builds as zip; both unpack under a single
// top-level directory whose name the extractor reports back.
package archive
