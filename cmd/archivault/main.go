// Package main 启动应用程序
package main

import "github.com/yemou/archivault/pkg/cmd"

//	@title			ArchiVault API
//	@version		1.0
//	@description	ArchiVault 是一个浏览器文档归档服务，提供文件上传、元数据同步、全文与向量检索以及回收站管理等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
