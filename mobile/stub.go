//go:build !mobile

// 桌面构建（没有 -tags mobile）时 mobile 包只剩这个文件：
// data/ 和 assets/ 只有在 make prepare-mobile 之后才会出现在本目录，
// 没有它们 embed.go 无法编译，所以真正的入口都放在 mobile 标签后面。
package mobile

// Dummy 与移动端构建导出同一个符号，go build ./... 和 go vet ./... 才能覆盖本包
func Dummy() {}
