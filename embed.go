// embed.go - 资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
package main

import "embed"

// 配置文件总是嵌入；图片、音频和字体从磁盘的 assets/ 读取（缺失时使用替代资源）
//
//go:embed data/*.yaml
var dataFS embed.FS
