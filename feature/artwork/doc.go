// Package artwork mirrors card artwork into object storage. Art URLs come
// from the catalog payload; each image is downloaded at most once and then
// served from the bucket.
package artwork
